// Package domain contains persistence models for customer accounts.
package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Customer is an account that invoices can be billed to. The discount here is
// account-level metadata only; invoices carry their own discount and nothing
// copies this value onto them.
type Customer struct {
	ID       snowflake.ID    `gorm:"primaryKey" json:"id"`
	FullName string          `gorm:"not null" json:"full_name"`
	Discount decimal.Decimal `gorm:"type:decimal(5,1);not null;default:0" json:"discount"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
