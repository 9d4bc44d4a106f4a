package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invio/internal/catalog/domain"
	"github.com/smallbiznis/invio/internal/catalog/repository"
	"github.com/smallbiznis/invio/internal/clock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) (domain.Service, domain.Repository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.Item{}); err != nil {
		t.Fatal(err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.Provide()
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
		Repo:  repo,
	})
	return svc, repo, db
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestCreate_PersistsItem(t *testing.T) {
	svc, _, _ := newService(t)

	item, err := svc.Create(context.Background(), domain.CreateItemRequest{
		ItemName: "  Standing Desk ",
		Price:    mustDecimal(t, "249.00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Standing Desk", item.ItemName)
	assert.True(t, item.Price.Equal(mustDecimal(t, "249.00")))
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), item.CreatedAt)
}

func TestCreate_RejectsBadPrice(t *testing.T) {
	svc, _, _ := newService(t)

	for _, price := range []string{"-1", "9.999"} {
		_, err := svc.Create(context.Background(), domain.CreateItemRequest{
			ItemName: "Widget",
			Price:    mustDecimal(t, price),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice, "price %s", price)
	}
}

func TestCreate_RejectsBlankName(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Create(context.Background(), domain.CreateItemRequest{
		ItemName: " ",
		Price:    mustDecimal(t, "1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestFindByIDs_BatchLookup(t *testing.T) {
	svc, repo, db := newService(t)

	first, err := svc.Create(context.Background(), domain.CreateItemRequest{ItemName: "Desk", Price: mustDecimal(t, "10.00")})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Create(context.Background(), domain.CreateItemRequest{ItemName: "Lamp", Price: mustDecimal(t, "3.50")})
	if err != nil {
		t.Fatal(err)
	}
	missing := snowflake.ID(999999)

	found, err := repo.FindByIDs(context.Background(), db, []snowflake.ID{first.ID, second.ID, missing})
	if err != nil {
		t.Fatal(err)
	}

	// one query resolves all present ids; absent ids are simply not in the map
	assert.Len(t, found, 2)
	assert.Equal(t, "Desk", found[first.ID].ItemName)
	assert.Equal(t, "Lamp", found[second.ID].ItemName)
	_, ok := found[missing]
	assert.False(t, ok)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.GetByID(context.Background(), snowflake.ID(42))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
