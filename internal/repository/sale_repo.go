package repository

import (
	"time"

	"github.com/vishdevs/inventory-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LowStockThreshold is the stock level at or below which a product shows
// up as a reorder alert on the dashboard.
const LowStockThreshold = 5

type SaleRepository interface {
	Insert(tx *gorm.DB, sale *model.Sale) error
	InsertItem(tx *gorm.DB, item *model.SaleItem) error
	UpdateTotal(tx *gorm.DB, id uuid.UUID, total float64) error
	FindAll() ([]model.Sale, error)
	FindRecent(limit int) ([]model.Sale, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	GetDashboardSummary() (*DashboardSummary, error)
}

// RevenuePoint untuk chart data
type RevenuePoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// DashboardSummary untuk overview stats
type DashboardSummary struct {
	TotalProducts    int64          `json:"totalProducts"`
	ItemsInStock     int64          `json:"itemsInStock"`
	ReorderAlerts    int64          `json:"reorderAlerts"`
	TodayRevenue     float64        `json:"todayRevenue"`
	OrdersToday      int64          `json:"ordersToday"`
	LowStockItems    int64          `json:"lowStockItems"`
	RevenueLast7Days []RevenuePoint `json:"revenueLast7Days"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Insert creates the sale header inside the caller's transaction. The
// total is whatever the caller set (0 for the placeholder row).
func (r *saleRepo) Insert(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) InsertItem(tx *gorm.DB, item *model.SaleItem) error {
	return tx.Create(item).Error
}

func (r *saleRepo) UpdateTotal(tx *gorm.DB, id uuid.UUID, total float64) error {
	return tx.Model(&model.Sale{}).
		Where("id = ?", id).
		Update("total_amount", total).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindRecent(limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Order("created_at DESC").Limit(limit).Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").Preload("Items.Product").First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) GetDashboardSummary() (*DashboardSummary, error) {
	var summary DashboardSummary

	if err := r.db.Model(&model.Product{}).Count(&summary.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(stock), 0)").
		Scan(&summary.ItemsInStock).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("stock <= ?", LowStockThreshold).
		Count(&summary.LowStockItems).Error; err != nil {
		return nil, err
	}
	summary.ReorderAlerts = summary.LowStockItems

	if err := r.db.Model(&model.Sale{}).
		Where("created_at::date = CURRENT_DATE").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&summary.TodayRevenue).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Sale{}).
		Where("created_at::date = CURRENT_DATE").
		Count(&summary.OrdersToday).Error; err != nil {
		return nil, err
	}

	points, err := r.revenueLast7Days()
	if err != nil {
		return nil, err
	}
	summary.RevenueLast7Days = points

	return &summary, nil
}

func (r *saleRepo) revenueLast7Days() ([]RevenuePoint, error) {
	rows, err := r.db.Model(&model.Sale{}).
		Select("created_at::date AS date, SUM(total_amount) AS total").
		Where("created_at >= (CURRENT_DATE - INTERVAL '6 days')").
		Group("created_at::date").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]RevenuePoint, 0, 7)
	for rows.Next() {
		var date time.Time
		var total float64
		if err := rows.Scan(&date, &total); err != nil {
			return nil, err
		}
		points = append(points, RevenuePoint{Date: date.Format("2006-01-02"), Total: total})
	}
	return points, rows.Err()
}
