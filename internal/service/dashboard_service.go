package service

import (
	"github.com/vishdevs/inventory-backend/internal/repository"
)

type DashboardService interface {
	GetSummary() (*repository.DashboardSummary, error)
}

type dashboardService struct {
	saleRepo repository.SaleRepository
}

func NewDashboardService(saleRepo repository.SaleRepository) DashboardService {
	return &dashboardService{saleRepo: saleRepo}
}

func (s *dashboardService) GetSummary() (*repository.DashboardSummary, error) {
	return s.saleRepo.GetDashboardSummary()
}
