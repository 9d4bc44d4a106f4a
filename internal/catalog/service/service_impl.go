package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/invio/internal/catalog/domain"
	"github.com/smallbiznis/invio/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateItemRequest) (domain.Item, error) {
	itemName := strings.TrimSpace(req.ItemName)
	if itemName == "" {
		return domain.Item{}, domain.ErrInvalidName
	}

	// Prices are stored with two fractional digits and must not be negative.
	if req.Price.IsNegative() || !req.Price.Equal(req.Price.Round(2)) {
		return domain.Item{}, domain.ErrInvalidPrice
	}

	item := domain.Item{
		ID:        s.genID.Generate(),
		ItemName:  itemName,
		Price:     req.Price,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.Item{}, err
	}

	s.log.Info("catalog item created",
		zap.Int64("item_id", item.ID.Int64()),
		zap.String("item_name", item.ItemName),
	)
	return item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		items = append(items, *row)
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Item, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Item{}, err
	}
	if item == nil {
		return domain.Item{}, domain.ErrNotFound
	}
	return *item, nil
}
