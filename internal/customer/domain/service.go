package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type CreateCustomerRequest struct {
	FullName string
	Discount decimal.Decimal
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	List(context.Context) ([]Customer, error)
	GetByID(context.Context, snowflake.ID) (Customer, error)
}

var (
	ErrInvalidName     = errors.New("invalid_full_name")
	ErrInvalidDiscount = errors.New("invalid_discount")
	ErrNotFound        = errors.New("not_found")
)
