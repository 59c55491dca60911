package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPreparing      OrderStatus = "preparing"
	OrderReady          OrderStatus = "ready"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// TrackableStatuses are the statuses accepted by filters and status updates,
// in display order. "ready" is stored by older rows but never set or filtered.
var TrackableStatuses = []OrderStatus{
	OrderPending,
	OrderConfirmed,
	OrderPreparing,
	OrderOutForDelivery,
	OrderDelivered,
	OrderCancelled,
}

func IsTrackableStatus(status string) bool {
	for _, s := range TrackableStatuses {
		if string(s) == status {
			return true
		}
	}
	return false
}

func TrackableStatusNames() []string {
	names := make([]string, len(TrackableStatuses))
	for i, s := range TrackableStatuses {
		names[i] = string(s)
	}
	return names
}

type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	CustomerID      uint        `json:"customer_id" gorm:"not null;index"`
	Customer        *Customer   `json:"-" gorm:"foreignKey:CustomerID"`
	TotalAmount     int64       `json:"total_amount" gorm:"not null"`
	Status          string      `json:"status" gorm:"size:20;not null;default:'pending'"`
	OrderDate       time.Time   `json:"order_date" gorm:"not null;index"`
	DeliveryAddress string      `json:"delivery_address" gorm:"type:text"`
	Phone           string      `json:"phone" gorm:"size:15"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "restaurant_orders"
}

func (o *Order) OrderNumber() string {
	return FormatOrderNumber(o.ID)
}

// FormatOrderNumber renders an order id as ORD followed by at least six digits.
func FormatOrderNumber(id uint) string {
	return fmt.Sprintf("ORD%06d", id)
}

// ParseOrderNumber reads an "ORD000123" style identifier. The prefix is
// case-insensitive and leading zeros are dropped, so an empty remainder is 0.
// hasPrefix is false when s does not start with ORD.
func ParseOrderNumber(s string) (id uint64, hasPrefix bool, err error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 || !strings.EqualFold(s[:3], "ORD") {
		return 0, false, nil
	}
	digits := strings.TrimLeft(s[3:], "0")
	if digits == "" {
		return 0, true, nil
	}
	id, err = strconv.ParseUint(digits, 10, 64)
	return id, true, err
}

type OrderItem struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	OrderID             uint      `json:"order_id" gorm:"not null;index"`
	MenuItemID          uint      `json:"menu_item_id" gorm:"not null;index"`
	MenuItem            *MenuItem `json:"-" gorm:"foreignKey:MenuItemID"`
	Quantity            int       `json:"quantity" gorm:"not null"`
	Price               int64     `json:"price" gorm:"not null"`
	SelectedVariation   string    `json:"selected_variation" gorm:"size:100"`
	SpecialInstructions string    `json:"special_instructions" gorm:"type:text"`
}

func (OrderItem) TableName() string {
	return "restaurant_orderitem"
}

func (i *OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// ItemName is the menu item's name, or empty when the item was not preloaded.
func (i *OrderItem) ItemName() string {
	if i.MenuItem == nil {
		return ""
	}
	return i.MenuItem.Name
}
