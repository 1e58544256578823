package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"cardtrack/internal/core"
	"cardtrack/internal/services"
)

type cardsPage struct {
	Cards  []core.Card
	Error  string
	Notice string
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cards, err := s.tracker.ListCards(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Cards page error", "error", err)
			http.Error(w, "failed to load cards", http.StatusInternalServerError)
			return
		}
		s.render(w, r, "cards.html", cardsPage{Cards: cards, Notice: noticeText(r.URL.Query().Get("ok"))})
	case http.MethodPost:
		s.handleAddCard(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := services.AddCardInput{Name: sanitizeInput(r.PostFormValue("card_name"))}
	target, err := parseFormAmount(r.PostFormValue("monthly_target"))
	if err != nil {
		s.rerenderCards(w, r, "목표액과 고정비는 0 이상의 정수여야 합니다")
		return
	}
	fixed, err := parseFormAmount(r.PostFormValue("fixed_cost"))
	if err != nil {
		s.rerenderCards(w, r, "목표액과 고정비는 0 이상의 정수여야 합니다")
		return
	}
	in.MonthlyTarget, in.FixedCost = target, fixed

	card, err := s.tracker.AddCard(r.Context(), in)
	if err != nil {
		slog.WarnContext(r.Context(), "Rejected card", "error", err, "name", in.Name)
		s.rerenderCards(w, r, formErrorText(err))
		return
	}

	slog.InfoContext(r.Context(), "Card added", "id", card.ID, "name", card.Name)
	http.Redirect(w, r, "/cards?ok=added", http.StatusSeeOther)
}

// handleSaveCards overwrites the card table from the edited grid. Hidden id
// fields keep identifiers stable; the active checkbox is keyed by row index
// since unchecked boxes are absent from the form.
func (s *Server) handleSaveCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ids := r.PostForm["card_id"]
	names := r.PostForm["card_name"]
	targets := r.PostForm["monthly_target"]
	fixeds := r.PostForm["fixed_cost"]
	if len(names) != len(ids) || len(targets) != len(ids) || len(fixeds) != len(ids) {
		http.Error(w, "malformed grid", http.StatusBadRequest)
		return
	}

	active := make(map[int]bool, len(r.PostForm["card_active"]))
	for _, v := range r.PostForm["card_active"] {
		if i, err := strconv.Atoi(v); err == nil {
			active[i] = true
		}
	}

	cards := make([]core.Card, 0, len(ids))
	for i := range ids {
		target, err := parseFormAmount(targets[i])
		if err != nil {
			s.rerenderCards(w, r, "목표액과 고정비는 0 이상의 정수여야 합니다")
			return
		}
		fixed, err := parseFormAmount(fixeds[i])
		if err != nil {
			s.rerenderCards(w, r, "목표액과 고정비는 0 이상의 정수여야 합니다")
			return
		}
		cards = append(cards, core.Card{
			ID:            sanitizeInput(ids[i]),
			Name:          sanitizeInput(names[i]),
			MonthlyTarget: target,
			FixedCost:     fixed,
			Active:        active[i],
		})
	}

	if err := s.tracker.SaveCards(r.Context(), cards); err != nil {
		slog.WarnContext(r.Context(), "Rejected card batch", "error", err, "rows", len(cards))
		s.rerenderCards(w, r, formErrorText(err))
		return
	}

	slog.InfoContext(r.Context(), "Card grid saved", "rows", len(cards))
	http.Redirect(w, r, "/cards?ok=saved", http.StatusSeeOther)
}

func (s *Server) rerenderCards(w http.ResponseWriter, r *http.Request, msg string) {
	cards, err := s.tracker.ListCards(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Cards page error", "error", err)
		http.Error(w, "failed to load cards", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.render(w, r, "cards.html", cardsPage{Cards: cards, Error: msg})
}
