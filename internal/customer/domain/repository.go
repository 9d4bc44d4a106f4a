package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	Exists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	List(ctx context.Context, db *gorm.DB) ([]*Customer, error)
}
