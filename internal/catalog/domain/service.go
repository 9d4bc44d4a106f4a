package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	ItemName string
	Price    decimal.Decimal
}

type Service interface {
	Create(context.Context, CreateItemRequest) (Item, error)
	List(context.Context) ([]Item, error)
	GetByID(context.Context, snowflake.ID) (Item, error)
}

var (
	ErrInvalidName  = errors.New("invalid_item_name")
	ErrInvalidPrice = errors.New("invalid_price")
	ErrNotFound     = errors.New("not_found")
)
