package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, item *Item) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Item, error)
	// FindByIDs resolves ids in a single batched query. Missing ids are simply
	// absent from the returned map; callers detect the omissions.
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (map[snowflake.ID]Item, error)
	List(ctx context.Context, db *gorm.DB) ([]*Item, error)
}
