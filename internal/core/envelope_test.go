package core

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeMessage(t *testing.T) {
	var withMsg Envelope[MonthlySummary]
	if err := json.Unmarshal([]byte(`{"data":null,"success":false,"message":"boom"}`), &withMsg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if withMsg.Message == nil || *withMsg.Message != "boom" {
		t.Fatalf("message = %v, want boom", withMsg.Message)
	}

	var noMsg Envelope[MonthlySummary]
	if err := json.Unmarshal([]byte(`{"data":{"total_expense":"1","total_income":"2","net_savings":"1"},"success":true,"message":null}`), &noMsg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if noMsg.Message != nil {
		t.Fatalf("expected absent message, got %q", *noMsg.Message)
	}
	if got := noMsg.MessageOr("none"); got != "none" {
		t.Fatalf("MessageOr = %q", got)
	}
}

func TestPaginatedDataValidate(t *testing.T) {
	tx := validTransaction()
	cases := []struct {
		name string
		p    PaginatedData[Transaction]
		ok   bool
	}{
		{"consistent", PaginatedData[Transaction]{Data: []Transaction{tx, tx}, Total: 5, PageNo: 1, MaxPerPage: 2, CurrentCount: 2}, true},
		{"empty last page", PaginatedData[Transaction]{Data: []Transaction{}, Total: 0, PageNo: 1, MaxPerPage: 10, CurrentCount: 0}, true},
		{"count mismatch", PaginatedData[Transaction]{Data: []Transaction{tx}, Total: 5, PageNo: 1, MaxPerPage: 2, CurrentCount: 2}, false},
		{"over page size", PaginatedData[Transaction]{Data: []Transaction{tx, tx, tx}, Total: 5, PageNo: 1, MaxPerPage: 2, CurrentCount: 3}, false},
		{"zero page", PaginatedData[Transaction]{Data: nil, Total: 0, PageNo: 0, MaxPerPage: 10, CurrentCount: 0}, false},
		{"bad item", PaginatedData[Transaction]{Data: []Transaction{{Type: "x", Amount: "1", Category: "a"}}, Total: 1, PageNo: 1, MaxPerPage: 10, CurrentCount: 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestPaginatedDataNavigation(t *testing.T) {
	p := PaginatedData[int]{Data: []int{1, 2}, Total: 5, PageNo: 2, MaxPerPage: 2, CurrentCount: 2}
	if !p.HasPrev() || !p.HasNext() {
		t.Fatalf("page 2 of 3 should have prev and next")
	}
	if p.Pages() != 3 {
		t.Fatalf("Pages() = %d, want 3", p.Pages())
	}

	last := PaginatedData[int]{Data: []int{5}, Total: 5, PageNo: 3, MaxPerPage: 2, CurrentCount: 1}
	if last.HasNext() {
		t.Fatalf("last page should not have next")
	}
}
