package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vishdevs/inventory-backend/internal/model"
	"github.com/vishdevs/inventory-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSaleService struct {
	summary *model.SaleSummary
	sales   []model.Sale
	err     error
}

func (s *stubSaleService) CreateSale(req *model.CreateSaleRequest) (*model.SaleSummary, error) {
	return s.summary, s.err
}

func (s *stubSaleService) GetAllSales() ([]model.Sale, error) {
	return s.sales, s.err
}

func (s *stubSaleService) GetRecentSales(limit int) ([]model.Sale, error) {
	if len(s.sales) > limit {
		return s.sales[:limit], s.err
	}
	return s.sales, s.err
}

func (s *stubSaleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.sales) == 0 {
		return nil, errors.New("not found")
	}
	return &s.sales[0], nil
}

func newSaleApp(svc service.SaleService) *fiber.App {
	app := fiber.New()
	h := NewSaleHandler(svc)
	app.Post("/api/v1/sales", h.CreateSale)
	app.Get("/api/v1/sales", h.GetSales)
	app.Get("/api/v1/sales/recent", h.GetRecentSales)
	app.Get("/api/v1/sales/:id", h.GetSale)
	return app
}

func postJSON(app *fiber.App, path, body string) (int, map[string]interface{}, error) {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed map[string]interface{}
	_ = json.Unmarshal(raw, &parsed)
	return resp.StatusCode, parsed, nil
}

func TestCreateSaleHandler_Created(t *testing.T) {
	saleID := uuid.New()
	app := newSaleApp(&stubSaleService{
		summary: &model.SaleSummary{ID: saleID, CustomerName: "A", TotalAmount: 15.00},
	})

	status, body, err := postJSON(app, "/api/v1/sales",
		`{"customerName":"A","items":[{"productId":"`+uuid.NewString()+`","quantity":3}]}`)

	require.NoError(t, err)
	assert.Equal(t, 201, status)
	assert.Equal(t, saleID.String(), body["id"])
	assert.Equal(t, "A", body["customerName"])
	assert.Equal(t, 15.00, body["totalAmount"])
}

func TestCreateSaleHandler_BusinessErrorIs400(t *testing.T) {
	productID := uuid.New()
	app := newSaleApp(&stubSaleService{
		err: &service.InsufficientStockError{ProductID: productID, Requested: 5, Available: 2},
	})

	status, body, err := postJSON(app, "/api/v1/sales",
		`{"customerName":"A","items":[{"productId":"`+productID.String()+`","quantity":5}]}`)

	require.NoError(t, err)
	assert.Equal(t, 400, status)
	message, _ := body["message"].(string)
	assert.Contains(t, message, productID.String())
	assert.Contains(t, message, "not enough stock")
}

func TestCreateSaleHandler_NotFoundErrorIs400(t *testing.T) {
	productID := uuid.New()
	app := newSaleApp(&stubSaleService{
		err: &service.ProductNotFoundError{ProductID: productID},
	})

	status, body, err := postJSON(app, "/api/v1/sales",
		`{"customerName":"A","items":[{"productId":"`+productID.String()+`","quantity":1}]}`)

	require.NoError(t, err)
	assert.Equal(t, 400, status)
	message, _ := body["message"].(string)
	assert.Contains(t, message, "not found")
}

func TestCreateSaleHandler_InfrastructureErrorIs500(t *testing.T) {
	app := newSaleApp(&stubSaleService{err: errors.New("connection refused")})

	status, body, err := postJSON(app, "/api/v1/sales",
		`{"customerName":"A","items":[{"productId":"`+uuid.NewString()+`","quantity":1}]}`)

	require.NoError(t, err)
	assert.Equal(t, 500, status)
	// internal detail must not leak
	message, _ := body["message"].(string)
	assert.Equal(t, "Internal server error", message)
}

func TestCreateSaleHandler_MalformedBodyIs400(t *testing.T) {
	app := newSaleApp(&stubSaleService{})

	status, _, err := postJSON(app, "/api/v1/sales", `{"customerName": `)

	require.NoError(t, err)
	assert.Equal(t, 400, status)
}

func TestGetRecentSalesHandler(t *testing.T) {
	sales := []model.Sale{
		{CustomerName: "A", TotalAmount: 10},
		{CustomerName: "B", TotalAmount: 20},
		{CustomerName: "C", TotalAmount: 30},
	}
	app := newSaleApp(&stubSaleService{sales: sales})

	req := httptest.NewRequest("GET", "/api/v1/sales/recent?limit=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	var got []model.Sale
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got, 2)
}

func TestGetSaleHandler_InvalidID(t *testing.T) {
	app := newSaleApp(&stubSaleService{})

	req := httptest.NewRequest("GET", "/api/v1/sales/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 400, resp.StatusCode)
}
