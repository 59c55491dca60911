package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"seaside_restaurant/internal/apperror"
	"seaside_restaurant/internal/events"
	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"

	"gorm.io/gorm"
)

type CartLine struct {
	MenuItemID          uint
	Quantity            int
	SelectedVariation   string
	SpecialInstructions string
}

type CreateOrderInput struct {
	CustomerID      uint
	DeliveryAddress string
	Phone           string
	Items           []CartLine
}

type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type StatusChange struct {
	Order     *models.Order
	OldStatus string
	NewStatus string
}

type OrderService interface {
	CreateCustomer(input CustomerInput) (*models.Customer, error)
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	UpdateStatus(ctx context.Context, identifier, status string) (*StatusChange, error)
	GetOrder(id uint) (*models.Order, error)
	CustomerOrders(customerID uint) (*models.Customer, []models.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	menuRepo     repository.MenuItemRepository
	publisher    events.Publisher
	notifier     NotificationService
	log          *slog.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	menuRepo repository.MenuItemRepository,
	publisher events.Publisher,
	notifier NotificationService,
	log *slog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		menuRepo:     menuRepo,
		publisher:    publisher,
		notifier:     notifier,
		log:          log,
	}
}

func (s *orderService) CreateCustomer(input CustomerInput) (*models.Customer, error) {
	customer := &models.Customer{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
	}

	for _, field := range []struct{ name, value string }{
		{"name", customer.Name},
		{"email", customer.Email},
		{"phone", customer.Phone},
		{"address", customer.Address},
	} {
		if field.value == "" {
			return nil, apperror.Invalid("Missing required field: '%s'", field.name)
		}
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateOrder prices every line from the current menu and stores the order
// with its lines in one transaction. The stored total is never recomputed.
func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Missing("Customer not found")
	}
	if err != nil {
		return nil, err
	}

	if len(input.Items) == 0 {
		return nil, apperror.Invalid("Order must contain at least one item")
	}

	ids := make([]uint, 0, len(input.Items))
	for _, line := range input.Items {
		ids = append(ids, line.MenuItemID)
	}
	menu, err := s.menuRepo.GetActiveByIDs(ids)
	if err != nil {
		return nil, err
	}

	var total int64
	lines := make([]models.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		item, ok := menu[line.MenuItemID]
		if !ok {
			return nil, apperror.Missing("One or more menu items not found")
		}
		if !item.IsAvailable {
			return nil, apperror.Invalid("Item '%s' is currently unavailable", item.Name)
		}

		unitPrice, err := ResolveUnitPrice(item, line.SelectedVariation)
		switch {
		case errors.Is(err, ErrInvalidVariation):
			return nil, apperror.Invalid("Invalid variation selected for '%s'", item.Name)
		case errors.Is(err, ErrPriceNotAvailable):
			return nil, apperror.Invalid("Price not available for '%s'", item.Name)
		}

		if line.Quantity < 1 {
			return nil, apperror.Invalid("Quantity for '%s' must be at least 1", item.Name)
		}

		total += unitPrice * int64(line.Quantity)
		lines = append(lines, models.OrderItem{
			MenuItemID:          item.ID,
			MenuItem:            item,
			Quantity:            line.Quantity,
			Price:               unitPrice,
			SelectedVariation:   line.SelectedVariation,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	order := &models.Order{
		CustomerID:      customer.ID,
		TotalAmount:     total,
		Status:          string(models.OrderPending),
		OrderDate:       time.Now().UTC(),
		DeliveryAddress: input.DeliveryAddress,
		Phone:           input.Phone,
		Items:           lines,
	}
	if order.DeliveryAddress == "" {
		order.DeliveryAddress = customer.Address
	}
	if order.Phone == "" {
		order.Phone = customer.Phone
	}

	if err := s.orderRepo.CreateWithItems(order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	// CreateWithItems drops the preloaded menu items; restore them for the summary.
	for i := range order.Items {
		order.Items[i].MenuItem = menu[order.Items[i].MenuItemID]
	}
	order.Customer = customer

	s.log.Info("order created", "order_id", order.ID, "customer_id", customer.ID, "total_amount", total, "items", len(lines))
	s.publish(ctx, events.OrderCreated, order, "")
	return order, nil
}

func (s *orderService) publish(ctx context.Context, key string, order *models.Order, oldStatus string) {
	if s.publisher == nil {
		return
	}
	event := events.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber(),
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		OldStatus:   oldStatus,
		Status:      order.Status,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.log.Warn("failed to publish order event", "order_id", order.ID, "event", key, "error", err)
	}
}

// findOrder resolves identifier as an ORD number, then as a plain id, then by
// the digits it contains. The first lookup that finds an order wins.
func (s *orderService) findOrder(identifier string) (*models.Order, error) {
	var candidates []uint64

	if id, hasPrefix, err := models.ParseOrderNumber(identifier); hasPrefix && err == nil && id > 0 {
		candidates = append(candidates, id)
	}
	if id, err := strconv.ParseUint(strings.TrimSpace(identifier), 10, 64); err == nil {
		candidates = append(candidates, id)
	}
	var digits strings.Builder
	for _, r := range identifier {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if id, err := strconv.ParseUint(digits.String(), 10, 64); err == nil {
		candidates = append(candidates, id)
	}

	for _, id := range candidates {
		if id == 0 || id > uint64(^uint(0)) {
			continue
		}
		order, err := s.orderRepo.GetByID(uint(id))
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, apperror.Missing("Order not found: %s", identifier)
}

func (s *orderService) UpdateStatus(ctx context.Context, identifier, status string) (*StatusChange, error) {
	if identifier == "" || status == "" {
		return nil, apperror.Invalid("order_id and status are required")
	}
	if !models.IsTrackableStatus(status) {
		return nil, apperror.Invalid("Invalid status. Must be one of: %s", strings.Join(models.TrackableStatusNames(), ", "))
	}

	order, err := s.findOrder(identifier)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if err := s.orderRepo.UpdateStatus(order.ID, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.log.Info("order status updated", "order_id", order.ID, "old_status", oldStatus, "new_status", status)
	s.publish(ctx, events.OrderStatusChanged, order, oldStatus)
	if s.notifier != nil {
		s.notifier.OrderStatusChanged(ctx, order)
	}

	return &StatusChange{Order: order, OldStatus: oldStatus, NewStatus: status}, nil
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Missing("Order not found")
	}
	return order, err
}

func (s *orderService) CustomerOrders(customerID uint) (*models.Customer, []models.Order, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperror.Missing("Customer not found")
	}
	if err != nil {
		return nil, nil, err
	}

	orders, err := s.orderRepo.ListByCustomer(customer.ID)
	if err != nil {
		return nil, nil, err
	}
	return customer, orders, nil
}
