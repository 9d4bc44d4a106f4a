package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	catalogdomain "github.com/smallbiznis/invio/internal/catalog/domain"
	catalogrepository "github.com/smallbiznis/invio/internal/catalog/repository"
	catalogservice "github.com/smallbiznis/invio/internal/catalog/service"
	"github.com/smallbiznis/invio/internal/clock"
	"github.com/smallbiznis/invio/internal/config"
	customerdomain "github.com/smallbiznis/invio/internal/customer/domain"
	customerrepository "github.com/smallbiznis/invio/internal/customer/repository"
	customerservice "github.com/smallbiznis/invio/internal/customer/service"
	invoicedomain "github.com/smallbiznis/invio/internal/invoice/domain"
	invoicerepository "github.com/smallbiznis/invio/internal/invoice/repository"
	invoiceservice "github.com/smallbiznis/invio/internal/invoice/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	err = db.AutoMigrate(
		&customerdomain.Customer{},
		&catalogdomain.Item{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLine{},
	)
	if err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}
	log := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	customerSvc := customerservice.New(customerservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  customerrepository.Provide(),
	})
	catalogSvc := catalogservice.New(catalogservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Clock: clk,
		Repo:  catalogrepository.Provide(),
	})
	invoiceSvc := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB:           db,
		Log:          log,
		GenID:        node,
		Clock:        clk,
		Repo:         invoicerepository.Provide(),
		CustomerRepo: customerrepository.Provide(),
		CatalogRepo:  catalogrepository.Provide(),
	})

	return NewServer(ServerParams{
		Gin:         NewEngine(),
		Cfg:         config.Config{Environment: "test"},
		DB:          db,
		GenID:       node,
		CustomerSvc: customerSvc,
		CatalogSvc:  catalogSvc,
		InvoiceSvc:  invoiceSvc,
	})
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	s.Engine().ServeHTTP(resp, req)
	return resp
}

func seedBasics(t *testing.T, s *Server) (customerdomain.Customer, catalogdomain.Item, catalogdomain.Item) {
	t.Helper()
	ctx := context.Background()
	customer, err := s.customerSvc.Create(ctx, customerdomain.CreateCustomerRequest{
		FullName: "Ada Lovelace",
		Discount: decimal.Zero,
	})
	if err != nil {
		t.Fatal(err)
	}
	desk, err := s.catalogSvc.Create(ctx, catalogdomain.CreateItemRequest{
		ItemName: "Desk",
		Price:    decimal.RequireFromString("10.00"),
	})
	if err != nil {
		t.Fatal(err)
	}
	lamp, err := s.catalogSvc.Create(ctx, catalogdomain.CreateItemRequest{
		ItemName: "Lamp",
		Price:    decimal.RequireFromString("3.50"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return customer, desk, lamp
}

type errorEnvelope struct {
	Error struct {
		Type   string `json:"type"`
		Errors []struct {
			Field string `json:"field"`
			Code  string `json:"code"`
		} `json:"errors"`
	} `json:"error"`
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	return envelope
}

func TestCreateCustomerEndpoint(t *testing.T) {
	s := newTestServer(t)

	resp := doJSON(t, s, http.MethodPost, "/api/customers", `{"full_name":"Grace Hopper","discount":12.5}`)
	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data customerdomain.Customer `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Grace Hopper", body.Data.FullName)
	assert.True(t, body.Data.Discount.Equal(decimal.RequireFromString("12.5")))
}

func TestCreateCustomerEndpoint_Invalid(t *testing.T) {
	s := newTestServer(t)

	resp := doJSON(t, s, http.MethodPost, "/api/customers", `{"full_name":"  ","discount":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	envelope := decodeError(t, resp)
	assert.Equal(t, "validation_error", envelope.Error.Type)
	assert.Equal(t, "invalid_full_name", envelope.Error.Errors[0].Code)
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	s := newTestServer(t)
	customer, desk, lamp := seedBasics(t, s)

	payload := fmt.Sprintf(
		`{"customer_id":%q,"date":"2025-06-01","discount":10.0,"lines":[{"item_id":%q,"quantity":2},{"item_id":%q,"quantity":4}]}`,
		customer.ID.String(), desk.ID.String(), lamp.ID.String(),
	)
	resp := doJSON(t, s, http.MethodPost, "/api/invoices", payload)
	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data invoicedomain.Invoice `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	assert.True(t, body.Data.GrandTotal.Equal(decimal.RequireFromString("30.60")), "grand total %s", body.Data.GrandTotal)
	assert.Len(t, body.Data.Lines, 2)
}

func TestCreateInvoiceEndpoint_ItemNotFound(t *testing.T) {
	s := newTestServer(t)
	customer, _, _ := seedBasics(t, s)

	payload := fmt.Sprintf(
		`{"customer_id":%q,"date":"2025-06-01","discount":0,"lines":[{"item_id":"999999","quantity":1}]}`,
		customer.ID.String(),
	)
	resp := doJSON(t, s, http.MethodPost, "/api/invoices", payload)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	envelope := decodeError(t, resp)
	assert.Equal(t, "validation_error", envelope.Error.Type)
	assert.Equal(t, "item_not_found", envelope.Error.Errors[0].Code)
}

func TestCreateInvoiceEndpoint_EmptyLines(t *testing.T) {
	s := newTestServer(t)
	customer, _, _ := seedBasics(t, s)

	payload := fmt.Sprintf(
		`{"customer_id":%q,"date":"2025-06-01","discount":0,"lines":[]}`,
		customer.ID.String(),
	)
	resp := doJSON(t, s, http.MethodPost, "/api/invoices", payload)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	envelope := decodeError(t, resp)
	assert.Equal(t, "empty_lines", envelope.Error.Errors[0].Code)
	assert.Equal(t, "lines", envelope.Error.Errors[0].Field)
}

func TestCreateInvoiceEndpoint_BadDate(t *testing.T) {
	s := newTestServer(t)
	customer, desk, _ := seedBasics(t, s)

	payload := fmt.Sprintf(
		`{"customer_id":%q,"date":"06/01/2025","discount":0,"lines":[{"item_id":%q,"quantity":1}]}`,
		customer.ID.String(), desk.ID.String(),
	)
	resp := doJSON(t, s, http.MethodPost, "/api/invoices", payload)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	envelope := decodeError(t, resp)
	assert.Equal(t, "invalid_date", envelope.Error.Errors[0].Code)
}

func TestGetInvoiceEndpoint(t *testing.T) {
	s := newTestServer(t)
	customer, desk, _ := seedBasics(t, s)

	payload := fmt.Sprintf(
		`{"customer_id":%q,"date":"2025-06-01","discount":0,"lines":[{"item_id":%q,"quantity":2}]}`,
		customer.ID.String(), desk.ID.String(),
	)
	resp := doJSON(t, s, http.MethodPost, "/api/invoices", payload)
	assert.Equal(t, http.StatusOK, resp.Code)

	var created struct {
		Data invoicedomain.Invoice `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	resp = doJSON(t, s, http.MethodGet, "/api/invoices/"+created.Data.ID.String(), "")
	assert.Equal(t, http.StatusOK, resp.Code)

	var detail struct {
		Data struct {
			CustomerName string `json:"customer_name"`
			Date         string `json:"date"`
			Lines        []struct {
				ItemName string `json:"item_name"`
			} `json:"lines"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Ada Lovelace", detail.Data.CustomerName)
	assert.Equal(t, "2025-06-01", detail.Data.Date)
	assert.Len(t, detail.Data.Lines, 1)
	assert.Equal(t, "Desk", detail.Data.Lines[0].ItemName)
}

func TestGetInvoiceEndpoint_NotFound(t *testing.T) {
	s := newTestServer(t)

	resp := doJSON(t, s, http.MethodGet, "/api/invoices/424242", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	envelope := decodeError(t, resp)
	assert.Equal(t, "not_found", envelope.Error.Type)
}

func TestListInvoicesEndpoint(t *testing.T) {
	s := newTestServer(t)
	customer, desk, _ := seedBasics(t, s)

	payload := fmt.Sprintf(
		`{"customer_id":%q,"date":"2025-06-01","discount":0,"lines":[{"item_id":%q,"quantity":1}]}`,
		customer.ID.String(), desk.ID.String(),
	)
	resp := doJSON(t, s, http.MethodPost, "/api/invoices", payload)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(t, s, http.MethodGet, "/api/invoices", "")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data []invoicedomain.InvoiceSummary `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	assert.Len(t, body.Data, 1)
	assert.Equal(t, "Ada Lovelace", body.Data[0].CustomerName)

	// dates render as plain calendar dates, same format the API accepts
	var raw struct {
		Data []struct {
			Date string `json:"date"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "2025-06-01", raw.Data[0].Date)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	resp := doJSON(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}
