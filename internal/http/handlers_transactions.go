package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"cardtrack/internal/core"
	"cardtrack/internal/services"
)

type transactionsPage struct {
	Months   []string
	Selected string
	Cards    []core.Card
	Rows     []services.HistoryRow
	Error    string
	Notice   string
}

// loadTransactionsPage assembles the entry view: the add form wants the
// active cards, the grid wants the month's history plus every card name for
// its selects.
func (s *Server) loadTransactionsPage(r *http.Request, month string) (transactionsPage, error) {
	view, err := s.tracker.Dashboard(r.Context(), month)
	if err != nil {
		return transactionsPage{}, err
	}
	cards, err := s.tracker.ListCards(r.Context())
	if err != nil {
		return transactionsPage{}, err
	}
	active := make([]core.Card, 0, len(cards))
	for _, c := range cards {
		if c.Active {
			active = append(active, c)
		}
	}
	rows, err := s.tracker.MonthHistory(r.Context(), view.SelectedMonth)
	if err != nil {
		return transactionsPage{}, err
	}
	return transactionsPage{
		Months:   view.Months,
		Selected: view.SelectedMonth,
		Cards:    active,
		Rows:     rows,
	}, nil
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		page, err := s.loadTransactionsPage(r, selectedMonth(r))
		if err != nil {
			slog.ErrorContext(r.Context(), "Transactions page error", "error", err)
			http.Error(w, "failed to load transactions", http.StatusInternalServerError)
			return
		}
		page.Notice = noticeText(r.URL.Query().Get("ok"))
		s.render(w, r, "transactions.html", page)
	case http.MethodPost:
		s.handleAddTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := services.AddTransactionInput{
		CardID: sanitizeInput(r.PostFormValue("card_id")),
		Date:   sanitizeInput(r.PostFormValue("date")),
		Item:   sanitizeInput(r.PostFormValue("item")),
	}
	amount, err := parseFormAmount(r.PostFormValue("amount"))
	if err != nil {
		s.rerenderTransactions(w, r, "금액은 1원 이상의 정수여야 합니다")
		return
	}
	in.Amount = amount

	tx, err := s.tracker.AddTransaction(r.Context(), in)
	if err != nil {
		slog.WarnContext(r.Context(), "Rejected transaction", "error", err, "card_id", in.CardID)
		s.rerenderTransactions(w, r, formErrorText(err))
		return
	}

	slog.InfoContext(r.Context(), "Transaction added", "id", tx.ID, "month", tx.Month, "amount", tx.Amount)
	redirect := "/transactions?ok=added&month=" + url.QueryEscape(tx.Month)
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// handleSaveTransactions reconciles the edited month grid. The form carries
// parallel arrays, one entry per visible row, plus delete checkboxes keyed by
// row index.
func (s *Server) handleSaveTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	month := sanitizeInput(r.PostFormValue("month"))
	ids := r.PostForm["tx_id"]
	names := r.PostForm["tx_card"]
	dates := r.PostForm["tx_date"]
	amounts := r.PostForm["tx_amount"]
	items := r.PostForm["tx_item"]
	if len(names) != len(ids) || len(dates) != len(ids) || len(amounts) != len(ids) || len(items) != len(ids) {
		http.Error(w, "malformed grid", http.StatusBadRequest)
		return
	}

	deleted := make(map[int]bool, len(r.PostForm["tx_delete"]))
	for _, v := range r.PostForm["tx_delete"] {
		if i, err := strconv.Atoi(v); err == nil {
			deleted[i] = true
		}
	}

	edits := make([]core.TxEdit, 0, len(ids))
	for i := range ids {
		amount, err := parseFormAmount(amounts[i])
		if err != nil {
			s.rerenderTransactions(w, r, "금액은 1원 이상의 정수여야 합니다")
			return
		}
		edits = append(edits, core.TxEdit{
			ID:       sanitizeInput(ids[i]),
			CardName: sanitizeInput(names[i]),
			Date:     sanitizeInput(dates[i]),
			Amount:   amount,
			Item:     sanitizeInput(items[i]),
			Delete:   deleted[i],
		})
	}

	if err := s.tracker.SaveTransactions(r.Context(), month, edits); err != nil {
		slog.WarnContext(r.Context(), "Rejected transaction batch", "error", err, "month", month, "rows", len(edits))
		s.rerenderTransactions(w, r, formErrorText(err))
		return
	}

	slog.InfoContext(r.Context(), "Transaction grid saved", "month", month, "rows", len(edits))
	http.Redirect(w, r, "/transactions?ok=saved&month="+url.QueryEscape(month), http.StatusSeeOther)
}

func (s *Server) rerenderTransactions(w http.ResponseWriter, r *http.Request, msg string) {
	month := sanitizeInput(r.PostFormValue("month"))
	page, err := s.loadTransactionsPage(r, month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transactions page error", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}
	page.Error = msg
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.render(w, r, "transactions.html", page)
}

// formErrorText turns domain validation errors into the text shown above the
// form. Unexpected errors get a generic line so internals never leak.
func formErrorText(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "금액은 1원 이상의 정수여야 합니다"
	case errors.Is(err, core.ErrBadDate):
		return "날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	case errors.Is(err, core.ErrOutOfWindow):
		return "허용된 월(전월/당월/익월) 범위를 벗어난 날짜입니다"
	case errors.Is(err, core.ErrUnknownCard):
		return "등록되지 않은 카드 이름입니다"
	case errors.Is(err, core.ErrEmptyCardName):
		return "카드 이름을 입력해 주세요"
	case errors.Is(err, core.ErrNegativeTarget):
		return "목표액과 고정비는 0 이상이어야 합니다"
	}
	return "저장에 실패했습니다. 잠시 후 다시 시도해 주세요"
}

func noticeText(ok string) string {
	switch ok {
	case "added":
		return "거래가 추가되었습니다"
	case "saved":
		return "변경사항이 저장되었습니다"
	}
	return ""
}
