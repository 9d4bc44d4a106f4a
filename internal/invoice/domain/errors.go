package domain

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrEmptyLines       = errors.New("empty_lines")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidDiscount  = errors.New("invalid_discount")
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrNotFound         = errors.New("not_found")
)

// ItemNotFoundError reports the first dangling item reference in a create
// request, in input order.
type ItemNotFoundError struct {
	ItemID snowflake.ID
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ItemID)
}

// CommitError wraps a storage failure raised during the atomic write phase.
// The transaction is rolled back before it surfaces; it is never retried here.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("invoice commit failed: %v", e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
