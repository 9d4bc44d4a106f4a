package migration

import (
	catalogdomain "github.com/smallbiznis/invio/internal/catalog/domain"
	"github.com/smallbiznis/invio/internal/config"
	customerdomain "github.com/smallbiznis/invio/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/invio/internal/invoice/domain"
	"github.com/smallbiznis/invio/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite deployments use the model-driven schema.
			err := conn.AutoMigrate(
				&customerdomain.Customer{},
				&catalogdomain.Item{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceLine{},
			)
			if err != nil {
				return err
			}
		}

		if cfg.SeedDemo {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
