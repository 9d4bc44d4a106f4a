package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/invio/internal/invoice/domain"
)

type createInvoiceLineRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

type createInvoiceRequest struct {
	CustomerID string                     `json:"customer_id"`
	Date       string                     `json:"date"`
	Discount   decimal.Decimal            `json:"discount"`
	Lines      []createInvoiceLineRequest `json:"lines"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	customerID, err := parseID(req.CustomerID)
	if err != nil {
		AbortWithError(c, newValidationError("customer_id", "invalid_customer_id", "invalid customer_id"))
		return
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be YYYY-MM-DD"))
		return
	}

	lines := make([]invoicedomain.LineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		itemID, err := parseID(line.ItemID)
		if err != nil {
			AbortWithError(c, newValidationError("lines", "invalid_item_id", "invalid item_id"))
			return
		}
		lines = append(lines, invoicedomain.LineInput{
			ItemID:   itemID,
			Quantity: line.Quantity,
		})
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		CustomerID: customerID,
		Date:       date,
		Discount:   req.Discount,
		Lines:      lines,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoiceByID(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isInvoiceValidationError(err error) bool {
	switch err {
	case invoicedomain.ErrEmptyLines,
		invoicedomain.ErrInvalidQuantity,
		invoicedomain.ErrInvalidDiscount,
		invoicedomain.ErrCustomerNotFound:
		return true
	default:
		return false
	}
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(raw))
}
