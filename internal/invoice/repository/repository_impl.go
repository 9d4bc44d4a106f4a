package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invio/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Omit("Lines").Create(invoice).Error
}

func (r *repo) InsertLines(ctx context.Context, db *gorm.DB, lines []*domain.InvoiceLine) error {
	if len(lines) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(lines).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("invoice_lines.id asc")
		}).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *repo) ListSummaries(ctx context.Context, db *gorm.DB) ([]*domain.InvoiceSummary, error) {
	var summaries []*domain.InvoiceSummary
	err := db.WithContext(ctx).Raw(
		`SELECT i.id, c.full_name AS customer_name, i.date, i.discount, i.grand_total, i.created_at
		 FROM invoices i
		 JOIN customers c ON c.id = i.customer_id
		 ORDER BY i.id DESC`,
	).Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
