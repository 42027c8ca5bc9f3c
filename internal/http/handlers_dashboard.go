package http

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"expenditure/internal/core"
	"expenditure/internal/log"
)

// statusClientClosedRequest records requests the client abandoned, so they
// are not logged as successes.
const statusClientClosedRequest = 499

type dashboardView struct {
	layout
	Period     period
	Monthly    panel[core.MonthlySummary]
	Weekly     panel[core.WeeklySummary]
	Projection panel[core.ProjectionSummary]
	Categories panel[core.CategoryBreakdown]
}

// handleDashboard loads the four summary panels concurrently. A failing
// panel shows its own notice while the others still render.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	p := ParseMonthParams(r.URL.Query(), s.now())
	view := dashboardView{
		layout: layout{Title: "Dashboard", Active: pageDashboard},
		Period: p,
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		view.Monthly = settle(s.backend.MonthlySummary(ctx, p.Year, p.Month))
		return nil
	})
	g.Go(func() error {
		view.Weekly = settle(s.backend.WeeklySummary(ctx))
		return nil
	})
	g.Go(func() error {
		view.Projection = settle(s.backend.Projection(ctx, p.Year, p.Month))
		return nil
	})
	g.Go(func() error {
		view.Categories = settle(s.backend.CategoryBreakdown(ctx, p.Year, p.Month))
		return nil
	})
	_ = g.Wait()

	if err := r.Context().Err(); err != nil {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Client went away before dashboard rendered",
			log.NewFields().WithError(err).ToSlice()...)
		w.WriteHeader(statusClientClosedRequest)
		return
	}
	s.render(w, r, NewPage(pageDashboard, view).NoStore())
}
