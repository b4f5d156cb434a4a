// Package cursor contains the default [domain.Cursor] implementation.
package cursor

import (
	"context"

	"github.com/vinicius-lino-figueiredo/unitdb/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/unitdb/domain"
)

// Cursor implements domain.Cursor over an already computed result set. Closing
// the cursor, or cancelling the context it was created with, ends the
// iteration.
type Cursor struct {
	docs   []domain.Document
	ctx    context.Context
	cancel context.CancelCauseFunc
	dec    domain.Decoder
	index  int
}

// NewCursor returns a new implementation of Cursor.
func NewCursor(ctx context.Context, docs []domain.Document, options ...domain.CursorOption) (domain.Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := domain.CursorOptions{
		Decoder: decoder.NewDecoder(),
	}

	for _, option := range options {
		option(&opts)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	return &Cursor{
		ctx:    ctx,
		cancel: cancel,
		index:  -1,
		dec:    opts.Decoder,
		docs:   docs,
	}, nil
}

// Err implements domain.Cursor. A closed cursor reports
// [domain.ErrCursorClosed].
func (c *Cursor) Err() error {
	return context.Cause(c.ctx)
}

// Scan implements domain.Cursor.
func (c *Cursor) Scan(ctx context.Context, target any) error {
	if err := c.Err(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.index < 0 {
		return domain.ErrScanBeforeNext
	}
	return c.dec.Decode(c.docs[c.index], target)
}

// Close implements domain.Cursor.
func (c *Cursor) Close() error {
	if err := c.Err(); err != nil {
		return err
	}
	c.cancel(domain.ErrCursorClosed)
	c.docs = nil
	return nil
}

// Next implements domain.Cursor.
func (c *Cursor) Next() bool {
	if c.ctx.Err() != nil {
		return false
	}
	if c.index+1 < len(c.docs) {
		c.index++
		return true
	}
	return false
}
