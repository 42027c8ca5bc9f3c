// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data.
// Query parameters fall back to defaults when absent or malformed; range
// checks are left to the API client so that a bad month surfaces as a notice.

package http

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"expenditure/internal/api"
	"expenditure/internal/core"
)

const dateLayout = "2006-01-02"

var (
	errInvalidDate = errors.New("invalid date")
	errTooLong     = errors.New("value too long")
)

const (
	maxCategoryLen    = 50
	maxDescriptionLen = 255
)

// ParseMonthParams extracts year and month from query parameters, using the
// month containing now as defaults.
func ParseMonthParams(query url.Values, now time.Time) period {
	p := period{Year: now.Year(), Month: int(now.Month())}
	if y, ok := intParam(query, "year"); ok {
		p.Year = y
	}
	if m, ok := intParam(query, "month"); ok {
		p.Month = m
	}
	return p
}

// ParsePageParams reads page and size. Non-positive or malformed values
// select the client defaults.
func ParsePageParams(query url.Values) api.PageRequest {
	var req api.PageRequest
	if n, ok := intParam(query, "page"); ok && n > 0 {
		req.PageNo = n
	}
	if n, ok := intParam(query, "size"); ok && n > 0 {
		req.MaxPerPage = n
	}
	return req
}

func intParam(query url.Values, key string) (int, bool) {
	v := strings.TrimSpace(query.Get(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// TransactionForm holds the raw create form so it can be re-rendered.
type TransactionForm struct {
	Amount          string
	Type            string
	Category        string
	Description     string
	TransactionDate string
	Errors          map[string]string
}

// ParseTransactionForm shapes a create form into a payload. Field errors
// are collected on the form; the payload is only meaningful when none exist.
func ParseTransactionForm(form url.Values) (TransactionForm, core.TransactionCreatePayload) {
	f := TransactionForm{
		Amount:          sanitizeInput(form.Get("amount")),
		Type:            strings.ToLower(sanitizeInput(form.Get("type"))),
		Category:        strings.ToLower(sanitizeInput(form.Get("category"))),
		Description:     sanitizeInput(form.Get("description")),
		TransactionDate: sanitizeInput(form.Get("transaction_date")),
		Errors:          map[string]string{},
	}

	var payload core.TransactionCreatePayload

	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		f.Errors["amount"] = "Enter a positive amount, e.g. 12.50"
	}
	payload.Amount = amount

	payload.Type = core.TransactionType(f.Type)
	if !payload.Type.Valid() {
		f.Errors["type"] = "Choose income or expense"
	}

	payload.Category = f.Category
	switch {
	case f.Category == "":
		f.Errors["category"] = "Category is required"
	case len(f.Category) > maxCategoryLen:
		f.Errors["category"] = errTooLong.Error()
	}

	if f.Description != "" {
		if len(f.Description) > maxDescriptionLen {
			f.Errors["description"] = errTooLong.Error()
		}
		d := f.Description
		payload.Description = &d
	}

	if f.TransactionDate != "" {
		if _, err := parseDate(f.TransactionDate); err != nil {
			f.Errors["transaction_date"] = "Use the YYYY-MM-DD format"
		}
		d := f.TransactionDate
		payload.TransactionDate = &d
	}

	return f, payload
}

// Valid reports whether the form produced no field errors.
func (f TransactionForm) Valid() bool {
	return len(f.Errors) == 0
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return t, nil
}
