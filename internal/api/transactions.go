package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"expenditure/internal/core"
	"expenditure/internal/log"
)

const (
	transactionsPath = "/v1/transactions/"

	DefaultPageNo     = 1
	DefaultMaxPerPage = 10
)

// PageRequest selects a page of transactions. Zero fields take the defaults
// (page 1, 10 per page); negative fields are rejected.
type PageRequest struct {
	PageNo     int
	MaxPerPage int
}

func (p PageRequest) normalized() (PageRequest, error) {
	if p.PageNo < 0 || p.MaxPerPage < 0 {
		return p, invalidArgument(log.OpListTransactions, "page_no %d and max_per_page %d must be at least 1", p.PageNo, p.MaxPerPage)
	}
	if p.PageNo == 0 {
		p.PageNo = DefaultPageNo
	}
	if p.MaxPerPage == 0 {
		p.MaxPerPage = DefaultMaxPerPage
	}
	return p, nil
}

// Transactions fetches one page of transactions, newest first.
func (c *Client) Transactions(ctx context.Context, page PageRequest) (*core.Envelope[core.PaginatedData[core.Transaction]], error) {
	page, err := page.normalized()
	if err != nil {
		return nil, err
	}
	return do[core.PaginatedData[core.Transaction]](ctx, c, request{
		op:     log.OpListTransactions,
		method: http.MethodGet,
		path:   transactionsPath,
		query: []param{
			{"page_no", strconv.Itoa(page.PageNo)},
			{"max_per_page", strconv.Itoa(page.MaxPerPage)},
		},
		fields: log.NewFields().WithPage(page.PageNo, page.MaxPerPage),
	})
}

// Transaction fetches a single transaction by id.
func (c *Client) Transaction(ctx context.Context, id int64) (*core.Envelope[core.Transaction], error) {
	if id < 1 {
		return nil, invalidArgument(log.OpGetTransaction, "id %d must be positive", id)
	}
	return do[core.Transaction](ctx, c, request{
		op:     log.OpGetTransaction,
		method: http.MethodGet,
		path:   transactionsPath + strconv.FormatInt(id, 10),
	})
}

// CreateTransaction posts a new transaction. It is never retried: the
// backend has no idempotency key.
func (c *Client) CreateTransaction(ctx context.Context, payload core.TransactionCreatePayload) (*core.Envelope[core.Transaction], error) {
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArgument, log.OpCreateTransaction, err)
	}
	return do[core.Transaction](ctx, c, request{
		op:     log.OpCreateTransaction,
		method: http.MethodPost,
		path:   transactionsPath,
		body:   payload,
		fields: log.NewFields().WithTransaction(string(payload.Type), payload.Category, payload.Amount.String()),
	})
}
