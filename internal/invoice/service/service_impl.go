package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/invio/internal/catalog/domain"
	"github.com/smallbiznis/invio/internal/clock"
	customerdomain "github.com/smallbiznis/invio/internal/customer/domain"
	invoicedomain "github.com/smallbiznis/invio/internal/invoice/domain"
	"github.com/smallbiznis/invio/pkg/db"
	"github.com/smallbiznis/invio/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Clock        clock.Clock
	Repo         invoicedomain.Repository
	CustomerRepo customerdomain.Repository
	CatalogRepo  catalogdomain.Repository
	Metrics      *telemetry.Metrics `optional:"true"`
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo         invoicedomain.Repository
	customerrepo customerdomain.Repository
	catalogrepo  catalogdomain.Repository
	metrics      *telemetry.Metrics
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("invoice.service"),
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		customerrepo: p.CustomerRepo,
		catalogrepo:  p.CatalogRepo,
		metrics:      p.Metrics,
	}
}

// Create validates one invoice request against the stores and commits the
// invoice together with all of its lines as a single atomic unit. Repeating
// the call creates a new invoice; dedup is the caller's concern.
func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	// Structural checks happen before any store access.
	if len(req.Lines) == 0 {
		s.recordRejected()
		return invoicedomain.Invoice{}, invoicedomain.ErrEmptyLines
	}
	for _, line := range req.Lines {
		if line.Quantity < 1 {
			s.recordRejected()
			return invoicedomain.Invoice{}, invoicedomain.ErrInvalidQuantity
		}
	}
	if err := validateDiscount(req.Discount); err != nil {
		s.recordRejected()
		return invoicedomain.Invoice{}, err
	}

	var invoice invoicedomain.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.customerrepo.Exists(ctx, tx, req.CustomerID)
		if err != nil {
			return &invoicedomain.CommitError{Err: err}
		}
		if !exists {
			return invoicedomain.ErrCustomerNotFound
		}

		itemsByID, err := s.catalogrepo.FindByIDs(ctx, tx, distinctItemIDs(req.Lines))
		if err != nil {
			return &invoicedomain.CommitError{Err: err}
		}
		for _, line := range req.Lines {
			if _, ok := itemsByID[line.ItemID]; !ok {
				return &invoicedomain.ItemNotFoundError{ItemID: line.ItemID}
			}
		}

		invoiceID := s.genID.Generate()
		subtotal := decimal.Zero
		lines := make([]*invoicedomain.InvoiceLine, 0, len(req.Lines))
		for _, in := range req.Lines {
			item := itemsByID[in.ItemID]
			lineTotal := item.Price.Mul(decimal.NewFromInt(in.Quantity))
			subtotal = subtotal.Add(lineTotal)

			lines = append(lines, &invoicedomain.InvoiceLine{
				ID:        s.genID.Generate(),
				InvoiceID: invoiceID,
				ItemID:    item.ID,
				Quantity:  in.Quantity,
				UnitPrice: item.Price,
				LineTotal: lineTotal,
			})
		}

		invoice = invoicedomain.Invoice{
			ID:         invoiceID,
			CustomerID: req.CustomerID,
			Date:       req.Date,
			Discount:   req.Discount,
			GrandTotal: grandTotal(subtotal, req.Discount),
			CreatedAt:  s.clock.Now(),
		}

		if err := s.repo.Insert(ctx, tx, &invoice); err != nil {
			// The customer can disappear between the existence check and the
			// header insert when the schema enforces the reference.
			if db.IsForeignKeyErr(err) {
				return invoicedomain.ErrCustomerNotFound
			}
			return &invoicedomain.CommitError{Err: err}
		}
		if err := s.repo.InsertLines(ctx, tx, lines); err != nil {
			return &invoicedomain.CommitError{Err: err}
		}

		for _, line := range lines {
			invoice.Lines = append(invoice.Lines, *line)
		}
		return nil
	})
	if err != nil {
		s.recordRejected()
		return invoicedomain.Invoice{}, err
	}

	s.log.Info("invoice created",
		zap.Int64("invoice_id", invoice.ID.Int64()),
		zap.Int64("customer_id", invoice.CustomerID.Int64()),
		zap.Int("lines", len(invoice.Lines)),
		zap.String("grand_total", invoice.GrandTotal.String()),
	)
	if s.metrics != nil {
		s.metrics.RecordInvoiceCreated(invoice.GrandTotal)
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context) ([]invoicedomain.InvoiceSummary, error) {
	rows, err := s.repo.ListSummaries(ctx, s.db)
	if err != nil {
		return nil, err
	}

	summaries := make([]invoicedomain.InvoiceSummary, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		summaries = append(summaries, *row)
	}
	return summaries, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (invoicedomain.InvoiceDetail, error) {
	invoice, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}
	if invoice == nil {
		return invoicedomain.InvoiceDetail{}, invoicedomain.ErrNotFound
	}

	customer, err := s.customerrepo.FindByID(ctx, s.db, invoice.CustomerID)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	itemIDs := make([]snowflake.ID, 0, len(invoice.Lines))
	for _, line := range invoice.Lines {
		itemIDs = append(itemIDs, line.ItemID)
	}
	itemsByID, err := s.catalogrepo.FindByIDs(ctx, s.db, itemIDs)
	if err != nil {
		return invoicedomain.InvoiceDetail{}, err
	}

	detail := invoicedomain.InvoiceDetail{
		ID:         invoice.ID,
		Date:       invoicedomain.NewDate(invoice.Date),
		Discount:   invoice.Discount,
		GrandTotal: invoice.GrandTotal,
		CreatedAt:  invoice.CreatedAt,
		Lines:      make([]invoicedomain.InvoiceLineView, 0, len(invoice.Lines)),
	}
	if customer != nil {
		detail.CustomerName = customer.FullName
	}
	for _, line := range invoice.Lines {
		detail.Lines = append(detail.Lines, invoicedomain.InvoiceLineView{
			ItemID:    line.ItemID,
			ItemName:  itemsByID[line.ItemID].ItemName,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	return detail, nil
}

func (s *Service) recordRejected() {
	if s.metrics != nil {
		s.metrics.RecordInvoiceRejected()
	}
}

// distinctItemIDs keeps the first occurrence of each id, in input order.
func distinctItemIDs(lines []invoicedomain.LineInput) []snowflake.ID {
	seen := make(map[snowflake.ID]struct{}, len(lines))
	ids := make([]snowflake.ID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ItemID]; ok {
			continue
		}
		seen[line.ItemID] = struct{}{}
		ids = append(ids, line.ItemID)
	}
	return ids
}

// validateDiscount enforces the invoice discount contract: [0,100) with at
// most one fractional digit.
func validateDiscount(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return invoicedomain.ErrInvalidDiscount
	}
	if !d.Equal(d.Round(1)) {
		return invoicedomain.ErrInvalidDiscount
	}
	return nil
}
