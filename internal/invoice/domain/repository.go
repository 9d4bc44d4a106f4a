package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	// InsertLines persists all lines of one invoice in a single batched
	// insert, never one statement per line.
	InsertLines(ctx context.Context, db *gorm.DB, lines []*InvoiceLine) error
	// FindByID loads the full aggregate with lines in creation order.
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	ListSummaries(ctx context.Context, db *gorm.DB) ([]*InvoiceSummary, error)
}
