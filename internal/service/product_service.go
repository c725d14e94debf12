package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vishdevs/inventory-backend/internal/model"
	"github.com/vishdevs/inventory-backend/internal/repository"
	"github.com/vishdevs/inventory-backend/internal/ws"
	"github.com/vishdevs/inventory-backend/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(req *model.Product) error
	UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetAllProducts() ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
	tx          repository.TxManager
	logger      *zap.Logger
	wsHub       *ws.Hub
}

func NewProductService(pRepo repository.ProductRepository, tx repository.TxManager, logger *zap.Logger, hub *ws.Hub) ProductService {
	return &productService{
		productRepo: pRepo,
		tx:          tx,
		logger:      logger,
		wsHub:       hub,
	}
}

func (s *productService) CreateProduct(req *model.Product) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Reason: validator.Describe(errs)}
	}

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.broadcastStock("product_created", req)
	return nil
}

// UpdateProduct locks the row for the duration of the write so a direct
// stock edit can't race a concurrent sale's decrement.
func (s *productService) UpdateProduct(id uuid.UUID, req *model.Product) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Reason: validator.Describe(errs)}
	}

	var updated *model.Product
	err := s.tx.Do(func(tx *gorm.DB) error {
		existing, err := s.productRepo.LockForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ProductNotFoundError{ProductID: id}
			}
			return err
		}

		existing.Name = req.Name
		existing.Category = req.Category
		existing.BuyingPrice = req.BuyingPrice
		existing.SellingPrice = req.SellingPrice
		existing.Stock = req.Stock

		if err := s.productRepo.Update(tx, existing); err != nil {
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastStock("product_updated", updated)
	return updated, nil
}

func (s *productService) DeleteProduct(id uuid.UUID) error {
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ProductNotFoundError{ProductID: id}
		}
		return err
	}
	return nil
}

func (s *productService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) broadcastStock(action string, product *model.Product) {
	if s.wsHub == nil {
		return
	}

	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"product": map[string]interface{}{
				"id":    product.ID,
				"name":  product.Name,
				"stock": product.Stock,
				"price": product.SellingPrice,
			},
			"message": fmt.Sprintf("Product '%s' %s", product.Name, action),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
