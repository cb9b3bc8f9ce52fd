package service

import (
	"context"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/domain/enum"
	"github.com/agrimarket/agrimarket-api/internal/domain/repository"
)

// DashboardService aggregates back-office overview figures
type DashboardService struct {
	orderRepo   repository.OrderRepository
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	messageRepo repository.MessageRepository,
) *DashboardService {
	return &DashboardService{
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

// DashboardStats holds the overview figures. Money fields are decimals.
type DashboardStats struct {
	PendingOrders      int64            `json:"pending_orders"`
	ConfirmedOrders    int64            `json:"confirmed_orders"`
	OutstandingBalance float64          `json:"outstanding_balance"`
	RevenueThisMonth   float64          `json:"revenue_this_month"`
	TotalProducts      int64            `json:"total_products"`
	TotalCustomers     int64            `json:"total_customers"`
	NewMessages        int64            `json:"new_messages"`
	LowStockProducts   []entity.Product `json:"low_stock_products"`
}

// GetStats computes the dashboard overview
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	pending, err := s.orderRepo.CountByStatus(ctx, enum.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	stats.PendingOrders = pending

	confirmed, err := s.orderRepo.CountByStatus(ctx, enum.OrderStatusConfirmed)
	if err != nil {
		return nil, err
	}
	stats.ConfirmedOrders = confirmed

	outstanding, err := s.invoiceRepo.SumOutstanding(ctx)
	if err != nil {
		return nil, err
	}
	stats.OutstandingBalance = float64(outstanding) / 100

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	revenue, err := s.paymentRepo.SumCompletedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	stats.RevenueThisMonth = float64(revenue) / 100

	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = products

	customers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = customers

	newMessages, err := s.messageRepo.CountByStatus(ctx, enum.MessageStatusNew)
	if err != nil {
		return nil, err
	}
	stats.NewMessages = newMessages

	lowStock, err := s.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	stats.LowStockProducts = lowStock

	return stats, nil
}
