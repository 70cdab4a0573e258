package client

import (
	"context"
	"net/url"
	"time"

	"github.com/jdoyle/centavo/finance"
)

// ListTransactionsOptions filters GET /transactions. Zero values are
// omitted from the query.
type ListTransactionsOptions struct {
	From     time.Time
	To       time.Time
	Category string
}

// CreateTransaction records a new transaction and returns the server's
// copy, including its assigned ID.
func (c *Client) CreateTransaction(ctx context.Context, tx finance.Transaction) (*finance.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	var out finance.Transaction
	if err := c.post(ctx, "/transactions", tx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTransactions fetches the user's transactions, newest first.
func (c *Client) ListTransactions(ctx context.Context, opts ListTransactionsOptions) ([]finance.Transaction, error) {
	q := url.Values{}
	if !opts.From.IsZero() {
		q.Set("from", opts.From.Format(time.RFC3339))
	}
	if !opts.To.IsZero() {
		q.Set("to", opts.To.Format(time.RFC3339))
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	var out []finance.Transaction
	if err := c.get(ctx, queryPath("/transactions", q), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTransaction removes a transaction by ID.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.delete(ctx, "/transactions/"+url.PathEscape(id))
}
