package api

import (
	"context"
	"net/http"
	"strconv"

	"expenditure/internal/core"
	"expenditure/internal/log"
)

const summaryPath = "/v1/transactions/summary"

// MonthlySummary fetches income and expense totals for year/month.
func (c *Client) MonthlySummary(ctx context.Context, year, month int) (*core.Envelope[core.MonthlySummary], error) {
	return periodCall[core.MonthlySummary](ctx, c, log.OpMonthlySummary, "/monthly", year, month)
}

// Projection fetches the month-end spend forecast for year/month.
func (c *Client) Projection(ctx context.Context, year, month int) (*core.Envelope[core.ProjectionSummary], error) {
	return periodCall[core.ProjectionSummary](ctx, c, log.OpProjection, "/projection", year, month)
}

// CategoryBreakdown fetches per-category expense totals for year/month.
func (c *Client) CategoryBreakdown(ctx context.Context, year, month int) (*core.Envelope[core.CategoryBreakdown], error) {
	return periodCall[core.CategoryBreakdown](ctx, c, log.OpCategoryBreakdown, "/category", year, month)
}

// WeeklySummary fetches totals for the backend's current week.
func (c *Client) WeeklySummary(ctx context.Context) (*core.Envelope[core.WeeklySummary], error) {
	return do[core.WeeklySummary](ctx, c, request{
		op:     log.OpWeeklySummary,
		method: http.MethodGet,
		path:   summaryPath + "/weekly",
	})
}

func periodCall[T any](ctx context.Context, c *Client, op, suffix string, year, month int) (*core.Envelope[T], error) {
	if err := checkPeriod(op, year, month); err != nil {
		return nil, err
	}
	return do[T](ctx, c, request{
		op:     op,
		method: http.MethodGet,
		path:   summaryPath + suffix,
		query: []param{
			{"year", strconv.Itoa(year)},
			{"month", strconv.Itoa(month)},
		},
		fields: log.NewFields().WithPeriod(year, month),
	})
}

func checkPeriod(op string, year, month int) error {
	if year < 1 {
		return invalidArgument(op, "year %d must be positive", year)
	}
	if month < 1 || month > 12 {
		return invalidArgument(op, "month %d must be between 1 and 12", month)
	}
	return nil
}
