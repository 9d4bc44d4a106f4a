package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invio/internal/customer/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	if err := validateDiscount(req.Discount); err != nil {
		return domain.Customer{}, err
	}

	customer := domain.Customer{
		ID:       s.genID.Generate(),
		FullName: fullName,
		Discount: req.Discount,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	s.log.Info("customer created",
		zap.Int64("customer_id", customer.ID.Int64()),
		zap.String("full_name", customer.FullName),
	)
	return customer, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}
	return customers, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Customer, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *item, nil
}

// validateDiscount enforces the account discount contract: [0,100) with at
// most one fractional digit.
func validateDiscount(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return domain.ErrInvalidDiscount
	}
	if !d.Equal(d.Round(1)) {
		return domain.ErrInvalidDiscount
	}
	return nil
}
