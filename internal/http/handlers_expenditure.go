package http

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"expenditure/internal/core"
)

type expenditureView struct {
	layout
	Period    period
	Breakdown panel[core.CategoryBreakdown]
	Monthly   panel[core.MonthlySummary]
}

// Share exposes the breakdown percentage to the template.
func (v expenditureView) Share(item core.CategoryBreakdownItem) int {
	return v.Breakdown.Data.Share(item)
}

func (s *Server) handleExpenditure(w http.ResponseWriter, r *http.Request) {
	p := ParseMonthParams(r.URL.Query(), s.now())
	view := expenditureView{
		layout: layout{Title: "Expenditure", Active: pageExpenditure},
		Period: p,
	}

	var breakdownErr error
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		env, err := s.backend.CategoryBreakdown(ctx, p.Year, p.Month)
		view.Breakdown = settle(env, err)
		breakdownErr = err
		return nil
	})
	g.Go(func() error {
		view.Monthly = settle(s.backend.MonthlySummary(ctx, p.Year, p.Month))
		return nil
	})
	_ = g.Wait()

	s.render(w, r, NewPage(pageExpenditure, view).Status(failureStatus(breakdownErr)).NoStore())
}
