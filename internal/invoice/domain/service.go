package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// LineInput is one (item, quantity) pair of a create request. Input order is
// preserved in the persisted lines.
type LineInput struct {
	ItemID   snowflake.ID
	Quantity int64
}

type CreateInvoiceRequest struct {
	CustomerID snowflake.ID
	Date       time.Time
	Discount   decimal.Decimal
	Lines      []LineInput
}

// InvoiceSummary is one row of the invoice overview listing.
type InvoiceSummary struct {
	ID           snowflake.ID    `json:"invoice_id"`
	CustomerName string          `json:"customer_name"`
	Date         Date            `json:"date"`
	Discount     decimal.Decimal `json:"discount"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	CreatedAt    time.Time       `json:"created_at"`
}

// InvoiceLineView is an invoice line joined with its catalog item name.
type InvoiceLineView struct {
	ItemID    snowflake.ID    `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// InvoiceDetail is the full aggregate view with resolved names.
type InvoiceDetail struct {
	ID           snowflake.ID      `json:"invoice_id"`
	CustomerName string            `json:"customer_name"`
	Date         Date              `json:"date"`
	Discount     decimal.Decimal   `json:"discount"`
	GrandTotal   decimal.Decimal   `json:"grand_total"`
	Lines        []InvoiceLineView `json:"lines"`
	CreatedAt    time.Time         `json:"created_at"`
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	List(context.Context) ([]InvoiceSummary, error)
	GetByID(context.Context, snowflake.ID) (InvoiceDetail, error)
}
