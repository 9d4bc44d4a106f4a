// Package domain contains persistence models for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Invoice is the transaction header. GrandTotal is a computed snapshot taken
// at creation time; it is never re-derived on read.
type Invoice struct {
	ID         snowflake.ID    `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID    `gorm:"not null;index" json:"customer_id"`
	Date       time.Time       `gorm:"type:date;not null" json:"date"`
	Discount   decimal.Decimal `gorm:"type:decimal(5,1);not null;default:0" json:"discount"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"grand_total"`
	CreatedAt  time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceLine is one line of an invoice. UnitPrice is the catalog price at
// the moment the invoice was created; later price changes never touch it.
type InvoiceLine struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	ItemID    snowflake.ID    `gorm:"not null;index" json:"item_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"line_total"`
}

// TableName sets the database table name.
func (InvoiceLine) TableName() string { return "invoice_lines" }
