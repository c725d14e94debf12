package handler

import (
	"strconv"

	"github.com/vishdevs/inventory-backend/internal/model"
	"github.com/vishdevs/inventory-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// CreateSale handles POST /api/v1/sales. Business-rule rejections
// (unknown product, insufficient stock, malformed items) come back as
// 400 with a descriptive message; anything else is a 500 with no
// internal detail leaked.
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req model.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "customerName and at least one item are required"})
	}

	summary, err := h.service.CreateSale(&req)
	if err != nil {
		if service.IsClientError(err) {
			return c.Status(400).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.Status(201).JSON(summary)
}

// GetRecentSales handles GET /api/v1/sales/recent?limit=5
func (h *SaleHandler) GetRecentSales(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	sales, err := h.service.GetRecentSales(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal server error"})
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal server error"})
	}
	return c.JSON(sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid sale ID"})
	}

	sale, err := h.service.GetSaleByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Sale not found"})
	}
	return c.JSON(sale)
}
