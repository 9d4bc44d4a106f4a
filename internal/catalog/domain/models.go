// Package domain contains persistence models for the item catalog.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Item is a priced catalog entry. Items are immutable once created; invoice
// lines reference them by id and snapshot the price at invoice time.
type Item struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	ItemName  string          `gorm:"not null" json:"item_name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Item) TableName() string { return "items" }
