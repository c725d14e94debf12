package handler

import (
	"errors"

	"github.com/vishdevs/inventory-backend/internal/model"
	"github.com/vishdevs/inventory-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Internal server error"})
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		var notFound *service.ProductNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Internal server error"})
	}
	return c.JSON(product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		if service.IsClientError(err) {
			return c.Status(400).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.Status(201).JSON(product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(id, &product)
	if err != nil {
		var notFound *service.ProductNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
		}
		if service.IsClientError(err) {
			return c.Status(400).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(updated)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		var notFound *service.ProductNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Product not found"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(fiber.Map{"success": true})
}
