package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Decimal is a monetary value kept in its wire form ("120.50") so that
	// formatting chosen by the backend survives a round trip.
	Decimal string

	// Transaction is a single financial event as returned by the backend.
	Transaction struct {
		ID              int64           `json:"id"`
		Amount          Decimal         `json:"amount"`
		Type            TransactionType `json:"type"`
		Category        string          `json:"category"`
		Description     *string         `json:"description,omitempty"`
		TransactionDate string          `json:"transaction_date"`
		CreatedAt       string          `json:"created_at"`
		UpdatedAt       string          `json:"updated_at"`
	}

	// TransactionCreatePayload is the write-side shape for a new transaction.
	// Nil optionals are left out of the request body.
	TransactionCreatePayload struct {
		Amount          decimal.Decimal
		Type            TransactionType
		Category        string
		Description     *string
		TransactionDate *string
	}
)

var (
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidDecimal  = errors.New("invalid decimal")
	ErrInvalidPage     = errors.New("invalid page")
	ErrInvalidProgress = errors.New("invalid projection progress")
	ErrInvalidID       = errors.New("invalid id")
	ErrMissingField    = errors.New("missing field")
	ErrInvalidPeriod   = errors.New("invalid period")
)

// Categories known to the backend. Category stays free text on the wire.
var Categories = []string{
	"salary", "bonus", "freelance", "investment",
	"food", "groceries", "transport", "utilities", "entertainment",
	"healthcare", "shopping", "education", "rent", "insurance",
	"subscriptions", "other",
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (t TransactionType) String() string {
	return string(t)
}

// Value parses the decimal string.
func (d Decimal) Value() (decimal.Decimal, error) {
	v, err := decimal.NewFromString(string(d))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q", ErrInvalidDecimal, string(d))
	}
	return v, nil
}

func (d Decimal) String() string {
	return string(d)
}

// UnmarshalJSON accepts only a JSON string holding a parseable decimal.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: expected string, got %s", ErrInvalidDecimal, string(b))
	}
	if _, err := decimal.NewFromString(s); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidDecimal, s)
	}
	*d = Decimal(s)
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidType, string(t.Type))
	}
	if _, err := t.Amount.Value(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.ID < 1 {
		return fmt.Errorf("%w %d", ErrInvalidID, t.ID)
	}
	return requireFields(map[string]string{
		"transaction_date": t.TransactionDate,
		"created_at":       t.CreatedAt,
		"updated_at":       t.UpdatedAt,
	})
}

// requireFields reports the first empty value, in key order.
func requireFields(fields map[string]string) error {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.TrimSpace(fields[k]) == "" {
			return fmt.Errorf("%w %q", ErrMissingField, k)
		}
	}
	return nil
}

// requireDecimals checks that every named value parses. A key missing from
// the JSON leaves the value empty, which fails here.
func requireDecimals(values map[string]Decimal) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := values[k].Value(); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return nil
}

// Validate checks only what is needed to shape a request.
func (p TransactionCreatePayload) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidType, string(p.Type))
	}
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(p.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// MarshalJSON writes amount as a bare JSON number and omits nil optionals.
func (p TransactionCreatePayload) MarshalJSON() ([]byte, error) {
	type wire struct {
		Amount          json.RawMessage `json:"amount"`
		Type            TransactionType `json:"type"`
		Category        string          `json:"category"`
		Description     *string         `json:"description,omitempty"`
		TransactionDate *string         `json:"transaction_date,omitempty"`
	}
	return json.Marshal(wire{
		Amount:          json.RawMessage(p.Amount.String()),
		Type:            p.Type,
		Category:        p.Category,
		Description:     p.Description,
		TransactionDate: p.TransactionDate,
	})
}
