package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MonthlySummary holds income and expense totals for a calendar month.
type MonthlySummary struct {
	TotalExpense Decimal `json:"total_expense"`
	TotalIncome  Decimal `json:"total_income"`
	NetSavings   Decimal `json:"net_savings"`
}

// WeeklySummary covers the current Monday..Sunday window.
type WeeklySummary struct {
	WeekStart    string  `json:"week_start"`
	WeekEnd      string  `json:"week_end"`
	TotalExpense Decimal `json:"total_expense"`
	TotalIncome  Decimal `json:"total_income"`
	NetSavings   Decimal `json:"net_savings"`
}

type CategoryBreakdownItem struct {
	Category string  `json:"category"`
	Total    Decimal `json:"total"`
}

// CategoryBreakdown lists expense totals per category, largest first.
type CategoryBreakdown struct {
	Year         int                     `json:"year"`
	Month        int                     `json:"month"`
	TotalExpense Decimal                 `json:"total_expense"`
	Items        []CategoryBreakdownItem `json:"items"`
}

// ProjectionSummary is a month-end spend forecast.
type ProjectionSummary struct {
	SpentSoFar        Decimal `json:"spent_so_far"`
	ProjectedMonthEnd Decimal `json:"projected_month_end"`
	DaysPassed        int     `json:"days_passed"`
	TotalDays         int     `json:"total_days"`
}

func (s MonthlySummary) Validate() error {
	return requireDecimals(map[string]Decimal{
		"total_expense": s.TotalExpense,
		"total_income":  s.TotalIncome,
		"net_savings":   s.NetSavings,
	})
}

func (s WeeklySummary) Validate() error {
	if err := requireFields(map[string]string{"week_start": s.WeekStart, "week_end": s.WeekEnd}); err != nil {
		return err
	}
	return requireDecimals(map[string]Decimal{
		"total_expense": s.TotalExpense,
		"total_income":  s.TotalIncome,
		"net_savings":   s.NetSavings,
	})
}

func (b CategoryBreakdown) Validate() error {
	if b.Year < 1 || b.Month < 1 || b.Month > 12 {
		return fmt.Errorf("%w %d/%d", ErrInvalidPeriod, b.Month, b.Year)
	}
	if _, err := b.TotalExpense.Value(); err != nil {
		return fmt.Errorf("total_expense: %w", err)
	}
	for i, item := range b.Items {
		if strings.TrimSpace(item.Category) == "" {
			return fmt.Errorf("items[%d]: %w", i, ErrEmptyCategory)
		}
		if _, err := item.Total.Value(); err != nil {
			return fmt.Errorf("items[%d].total: %w", i, err)
		}
	}
	return nil
}

func (p ProjectionSummary) Validate() error {
	if p.DaysPassed < 0 || p.TotalDays < 0 || p.DaysPassed > p.TotalDays {
		return ErrInvalidProgress
	}
	return requireDecimals(map[string]Decimal{
		"spent_so_far":        p.SpentSoFar,
		"projected_month_end": p.ProjectedMonthEnd,
	})
}

// Balanced reports whether net savings equals income minus expense.
// The backend guarantees it; this is for display checks only.
func (s MonthlySummary) Balanced() bool {
	return balanced(s.TotalIncome, s.TotalExpense, s.NetSavings)
}

func (s WeeklySummary) Balanced() bool {
	return balanced(s.TotalIncome, s.TotalExpense, s.NetSavings)
}

func balanced(income, expense, net Decimal) bool {
	in, err1 := income.Value()
	out, err2 := expense.Value()
	n, err3 := net.Value()
	if err1 != nil || err2 != nil || err3 != nil {
		return false
	}
	return in.Sub(out).Equal(n)
}

// Share returns the item's percentage of the breakdown total, rounded and
// clamped to 0..100. Non-zero items never round below 1.
func (b CategoryBreakdown) Share(item CategoryBreakdownItem) int {
	total, err := b.TotalExpense.Value()
	if err != nil || !total.IsPositive() {
		return 0
	}
	v, err := item.Total.Value()
	if err != nil || !v.IsPositive() {
		return 0
	}
	pct := int(v.Mul(decimal.NewFromInt(100)).Div(total).Round(0).IntPart())
	if pct < 1 {
		pct = 1
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Progress returns days_passed as a percentage of total_days.
func (p ProjectionSummary) Progress() int {
	if p.TotalDays <= 0 {
		return 0
	}
	return p.DaysPassed * 100 / p.TotalDays
}
