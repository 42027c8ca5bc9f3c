package http

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"expenditure/internal/core"
)

func TestParseMonthParams(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		query url.Values
		want  period
	}{
		{"both provided", url.Values{"year": {"2023"}, "month": {"11"}}, period{2023, 11}},
		{"only month", url.Values{"month": {"6"}}, period{2024, 6}},
		{"empty uses now", url.Values{}, period{2024, 3}},
		{"malformed ignored", url.Values{"year": {"x"}, "month": {"abc"}}, period{2024, 3}},
		{"out of range kept", url.Values{"month": {"13"}}, period{2024, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMonthParams(tt.query, now); got != tt.want {
				t.Errorf("ParseMonthParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name     string
		query    url.Values
		wantPage int
		wantSize int
	}{
		{"defaults", url.Values{}, 0, 0},
		{"explicit", url.Values{"page": {"3"}, "size": {"25"}}, 3, 25},
		{"non-positive falls back", url.Values{"page": {"0"}, "size": {"-5"}}, 0, 0},
		{"malformed falls back", url.Values{"page": {"two"}}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePageParams(tt.query)
			if got.PageNo != tt.wantPage || got.MaxPerPage != tt.wantSize {
				t.Errorf("ParsePageParams() = %+v, want page=%d size=%d", got, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestParseTransactionForm(t *testing.T) {
	t.Run("valid with optionals", func(t *testing.T) {
		form, payload := ParseTransactionForm(url.Values{
			"amount":           {"12,50"},
			"type":             {"Expense"},
			"category":         {" groceries "},
			"description":      {"weekly shop"},
			"transaction_date": {"2024-03-02"},
		})
		if !form.Valid() {
			t.Fatalf("unexpected errors: %v", form.Errors)
		}
		if payload.Amount.StringFixed(2) != "12.50" {
			t.Errorf("amount = %s", payload.Amount.StringFixed(2))
		}
		if payload.Type != core.Expense || payload.Category != "groceries" {
			t.Errorf("type/category = %q/%q", payload.Type, payload.Category)
		}
		if payload.Description == nil || *payload.Description != "weekly shop" {
			t.Errorf("description = %v", payload.Description)
		}
		if payload.TransactionDate == nil || *payload.TransactionDate != "2024-03-02" {
			t.Errorf("transaction_date = %v", payload.TransactionDate)
		}
		if err := payload.Validate(); err != nil {
			t.Errorf("payload should validate: %v", err)
		}
	})

	t.Run("optionals omitted", func(t *testing.T) {
		form, payload := ParseTransactionForm(url.Values{
			"amount": {"5"}, "type": {"income"}, "category": {"salary"},
		})
		if !form.Valid() {
			t.Fatalf("unexpected errors: %v", form.Errors)
		}
		if payload.Description != nil || payload.TransactionDate != nil {
			t.Error("empty optionals must stay nil")
		}
	})

	t.Run("field errors", func(t *testing.T) {
		form, _ := ParseTransactionForm(url.Values{
			"amount": {"-3"}, "type": {"transfer"}, "transaction_date": {"02/03/2024"},
		})
		for _, field := range []string{"amount", "type", "category", "transaction_date"} {
			if form.Errors[field] == "" {
				t.Errorf("expected error for %s", field)
			}
		}
		if form.Amount != "-3" {
			t.Errorf("raw amount should be kept for re-render, got %q", form.Amount)
		}
	})
}

func TestParseDate(t *testing.T) {
	if _, err := parseDate("2024-02-29"); err != nil {
		t.Errorf("leap day rejected: %v", err)
	}
	if _, err := parseDate("2023-02-29"); !errors.Is(err, errInvalidDate) {
		t.Errorf("expected errInvalidDate, got %v", err)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  a\x00b\tc  "); got != "ab\tc" {
		t.Errorf("sanitizeInput() = %q", got)
	}
}
