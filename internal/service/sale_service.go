package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/vishdevs/inventory-backend/internal/model"
	"github.com/vishdevs/inventory-backend/internal/repository"
	"github.com/vishdevs/inventory-backend/internal/ws"
	"github.com/vishdevs/inventory-backend/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(req *model.CreateSaleRequest) (*model.SaleSummary, error)
	GetAllSales() ([]model.Sale, error)
	GetRecentSales(limit int) ([]model.Sale, error)
	GetSaleByID(id uuid.UUID) (*model.Sale, error)
}

type saleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	tx          repository.TxManager
	logger      *zap.Logger
	wsHub       *ws.Hub
}

func NewSaleService(sRepo repository.SaleRepository, pRepo repository.ProductRepository, tx repository.TxManager, logger *zap.Logger, hub *ws.Hub) SaleService {
	return &saleService{
		saleRepo:    sRepo,
		productRepo: pRepo,
		tx:          tx,
		logger:      logger,
		wsHub:       hub,
	}
}

// CreateSale records one sale as a single all-or-nothing transaction:
// insert a placeholder sale header, then per line item lock the product
// row, verify stock, snapshot the unit price, write the line item and
// decrement stock, and finally write the accumulated total. Any failure
// rolls the whole thing back.
func (s *saleService) CreateSale(req *model.CreateSaleRequest) (*model.SaleSummary, error) {
	// 1. Validasi Input (fails before any storage is touched)
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Reason: errs[0].String()}
	}

	// 2. Lock products in a consistent global order. Two overlapping
	// multi-item sales locking the same pair of rows in opposite order
	// would deadlock; sorting by product id rules that out.
	lines := make([]model.SaleLine, len(req.Items))
	copy(lines, req.Items)
	sort.Slice(lines, func(i, j int) bool {
		return bytes.Compare(lines[i].ProductID[:], lines[j].ProductID[:]) < 0
	})

	// 3. Transaction Block (Atomic Operation)
	var summary *model.SaleSummary
	err := s.tx.Do(func(tx *gorm.DB) error {
		// Placeholder header row; the id ties the line items together
		// before the total is known.
		sale := &model.Sale{CustomerName: req.CustomerName}
		if err := s.saleRepo.Insert(tx, sale); err != nil {
			return err
		}

		var total float64
		for _, line := range lines {
			product, err := s.productRepo.LockForUpdate(tx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &ProductNotFoundError{ProductID: line.ProductID}
				}
				return err
			}

			if product.Stock < line.Quantity {
				return &InsufficientStockError{
					ProductID: product.ID,
					Requested: line.Quantity,
					Available: product.Stock,
				}
			}

			item := &model.SaleItem{
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.SellingPrice, // price snapshot
			}
			if err := s.saleRepo.InsertItem(tx, item); err != nil {
				return err
			}

			if err := s.productRepo.DecrementStock(tx, product.ID, line.Quantity); err != nil {
				return err
			}

			total += product.SellingPrice * float64(line.Quantity)
		}

		if err := s.saleRepo.UpdateTotal(tx, sale.ID, total); err != nil {
			return err
		}

		summary = &model.SaleSummary{
			ID:           sale.ID,
			CustomerName: req.CustomerName,
			TotalAmount:  total,
		}
		return nil
	})

	if err != nil {
		if IsClientError(err) {
			s.logger.Info("sale rejected",
				zap.String("customer", req.CustomerName),
				zap.Error(err))
		} else {
			s.logger.Error("sale transaction failed",
				zap.String("customer", req.CustomerName),
				zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("sale created",
		zap.String("sale_id", summary.ID.String()),
		zap.String("customer", summary.CustomerName),
		zap.Float64("total_amount", summary.TotalAmount),
		zap.Int("items", len(lines)))

	s.broadcastSale(summary, lines)

	return summary, nil
}

// broadcastSale pushes a stock_update event to dashboard clients.
func (s *saleService) broadcastSale(summary *model.SaleSummary, lines []model.SaleLine) {
	if s.wsHub == nil {
		return
	}

	go func() {
		items := make([]map[string]interface{}, len(lines))
		for i, line := range lines {
			items[i] = map[string]interface{}{
				"product_id": line.ProductID,
				"quantity":   line.Quantity,
			}
		}

		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "sale_created",
			"sale": map[string]interface{}{
				"id":           summary.ID,
				"customer":     summary.CustomerName,
				"total_amount": summary.TotalAmount,
				"items":        items,
			},
			"message": fmt.Sprintf("Sale recorded for %s", summary.CustomerName),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}

func (s *saleService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) GetRecentSales(limit int) ([]model.Sale, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.saleRepo.FindRecent(limit)
}

func (s *saleService) GetSaleByID(id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(id)
}
