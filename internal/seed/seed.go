package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/invio/internal/catalog/domain"
	customerdomain "github.com/smallbiznis/invio/internal/customer/domain"
	"gorm.io/gorm"
)

const demoCustomerName = "Demo Customer"

// EnsureDemoData seeds one customer and a small catalog so a fresh install
// can issue an invoice immediately. Safe to call on every startup.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureDemoCustomerTx(ctx, tx, node); err != nil {
			return err
		}
		return ensureDemoItemsTx(ctx, tx, node)
	})
}

func ensureDemoCustomerTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var customer customerdomain.Customer
	err := tx.WithContext(ctx).Where("full_name = ?", demoCustomerName).First(&customer).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	customer = customerdomain.Customer{
		ID:       node.Generate(),
		FullName: demoCustomerName,
		Discount: decimal.NewFromInt(10),
	}
	return tx.WithContext(ctx).Create(&customer).Error
}

func ensureDemoItemsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	items := []struct {
		name  string
		price string
	}{
		{"Standing Desk", "249.00"},
		{"Office Chair", "129.50"},
		{"Cable Tray", "12.75"},
	}

	for _, it := range items {
		var existing catalogdomain.Item
		err := tx.WithContext(ctx).Where("item_name = ?", it.name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		price, err := decimal.NewFromString(it.price)
		if err != nil {
			return err
		}
		item := catalogdomain.Item{
			ID:       node.Generate(),
			ItemName: it.name,
			Price:    price,
		}
		if err := tx.WithContext(ctx).Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}
