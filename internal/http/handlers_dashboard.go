package http

import (
	"log/slog"
	"net/http"

	"cardtrack/internal/core"
)

type dashboardPage struct {
	Months   []string
	Selected string
	Rows     []core.DashboardRow
	Risk     core.MonthEndRisk
	RiskDate string
}

// handleDashboard renders the per-card spend/target overview for one month
// of the allowed window, with the month-end banner.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	view, err := s.tracker.Dashboard(r.Context(), selectedMonth(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard error", "error", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "dashboard.html", dashboardPage{
		Months:   view.Months,
		Selected: view.SelectedMonth,
		Rows:     view.Rows,
		Risk:     view.Risk,
		RiskDate: view.Risk.Date.Format("2006-01-02"),
	})
}
