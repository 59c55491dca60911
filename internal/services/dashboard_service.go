package services

import (
	"time"

	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"
)

const recentOrdersLimit = 10

type DashboardStats struct {
	TodayOrders    int64
	TodayRevenue   int64
	TotalOrders    int64
	TotalCustomers int64
	TotalMenuItems int64
	StatusCounts   map[string]int64
	RecentOrders   []models.Order
}

type OrderListing struct {
	Orders         []models.Order
	StatusCounts   map[string]int64
	TotalOrders    int64
	AllOrdersCount int64
}

type DashboardService interface {
	Stats() (*DashboardStats, error)
	Orders(filter repository.OrderFilter) (*OrderListing, error)
}

type dashboardService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	menuRepo     repository.MenuItemRepository
	now          func() time.Time
}

func NewDashboardService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	menuRepo repository.MenuItemRepository,
) DashboardService {
	return &dashboardService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		menuRepo:     menuRepo,
		now:          time.Now,
	}
}

func (s *dashboardService) Stats() (*DashboardStats, error) {
	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var (
		stats DashboardStats
		err   error
	)
	if stats.TodayOrders, stats.TodayRevenue, err = s.orderRepo.SummarySince(midnight); err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.orderRepo.Count(repository.OrderFilter{}); err != nil {
		return nil, err
	}
	if stats.TotalCustomers, err = s.customerRepo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalMenuItems, err = s.menuRepo.CountActive(); err != nil {
		return nil, err
	}
	if stats.StatusCounts, err = s.orderRepo.CountByStatus(repository.OrderFilter{}); err != nil {
		return nil, err
	}
	if stats.RecentOrders, err = s.orderRepo.Recent(recentOrdersLimit); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Orders lists orders matching filter. Status counts and TotalOrders are taken
// over the filtered set; AllOrdersCount ignores the filter.
func (s *dashboardService) Orders(filter repository.OrderFilter) (*OrderListing, error) {
	orders, err := s.orderRepo.Search(filter)
	if err != nil {
		return nil, err
	}
	counts, err := s.orderRepo.CountByStatus(filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	all, err := s.orderRepo.Count(repository.OrderFilter{})
	if err != nil {
		return nil, err
	}

	return &OrderListing{
		Orders:         orders,
		StatusCounts:   counts,
		TotalOrders:    total,
		AllOrdersCount: all,
	}, nil
}
