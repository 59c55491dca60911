package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders services.OrderService
	resp   responder
	plain  responder
}

func NewOrderHandler(orders services.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		resp:   responder{log: log, withSuccess: true},
		plain:  responder{log: log},
	}
}

type customerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *OrderHandler) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if !h.plain.bind(c, &req, "Invalid JSON data") {
		return
	}

	customer, err := h.orders.CreateCustomer(services.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		h.plain.fail(c, err, "Failed to create customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Customer created successfully",
		"customer_id": customer.ID,
	})
}

type cartLineRequest struct {
	MenuItemID          looseID `json:"menu_item_id"`
	Quantity            looseID `json:"quantity"`
	SelectedVariation   string  `json:"selected_variation"`
	SpecialInstructions string  `json:"special_instructions"`
}

type createOrderRequest struct {
	CustomerID      looseID            `json:"customer_id"`
	DeliveryAddress string             `json:"delivery_address"`
	Phone           string             `json:"phone"`
	Items           *[]cartLineRequest `json:"items"`
}

func missingField(name string) string {
	return fmt.Sprintf("Missing required field: '%s'", name)
}

// cart converts the request lines, returning a message for the first line
// that lacks an item id or a whole-number quantity.
func (req *createOrderRequest) cart() ([]services.CartLine, string) {
	if req.Items == nil {
		return nil, missingField("items")
	}

	lines := make([]services.CartLine, 0, len(*req.Items))
	for _, line := range *req.Items {
		if line.MenuItemID == "" {
			return nil, missingField("menu_item_id")
		}
		if line.Quantity == "" {
			return nil, missingField("quantity")
		}
		itemID, ok := line.MenuItemID.Uint()
		if !ok {
			return nil, "One or more menu items not found"
		}
		qty, ok := line.Quantity.Int()
		if !ok {
			return nil, "Quantity must be a whole number"
		}
		lines = append(lines, services.CartLine{
			MenuItemID:          itemID,
			Quantity:            qty,
			SelectedVariation:   strings.TrimSpace(line.SelectedVariation),
			SpecialInstructions: line.SpecialInstructions,
		})
	}
	return lines, ""
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if !h.resp.bind(c, &req, "Invalid JSON data") {
		return
	}

	if req.CustomerID == "" {
		h.resp.abort(c, http.StatusBadRequest, "customer_id is required")
		return
	}
	customerID, ok := req.CustomerID.Uint()
	if !ok {
		h.resp.abort(c, http.StatusNotFound, "Customer not found")
		return
	}

	lines, problem := req.cart()
	if problem != "" {
		h.resp.abort(c, http.StatusBadRequest, problem)
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), services.CreateOrderInput{
		CustomerID:      customerID,
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		Phone:           strings.TrimSpace(req.Phone),
		Items:           lines,
	})
	if err != nil {
		h.resp.fail(c, err, "Order creation failed")
		return
	}

	items := make([]gin.H, 0, len(order.Items))
	for i := range order.Items {
		line := &order.Items[i]
		items = append(items, gin.H{
			"id":                   line.MenuItemID,
			"name":                 line.ItemName(),
			"quantity":             line.Quantity,
			"unit_price":           line.Price,
			"total_price":          line.Subtotal(),
			"selected_variation":   nullable(line.SelectedVariation),
			"special_instructions": line.SpecialInstructions,
		})
	}

	customerName := ""
	if order.Customer != nil {
		customerName = order.Customer.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Order created successfully",
		"order_id":     order.ID,
		"order_number": order.OrderNumber(),
		"total_amount": order.TotalAmount,
		"order_summary": gin.H{
			"order_id":         order.ID,
			"order_number":     order.OrderNumber(),
			"customer_name":    customerName,
			"customer_phone":   order.Phone,
			"delivery_address": order.DeliveryAddress,
			"total_amount":     order.TotalAmount,
			"status":           order.Status,
			"order_date":       isoTime(order.OrderDate),
			"items":            items,
		},
	})
}

type statusRequest struct {
	OrderID looseID `json:"order_id"`
	Status  string  `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	if !hasBody(c) {
		h.resp.abort(c, http.StatusBadRequest, "Request body is required")
		return
	}
	var req statusRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		h.resp.abort(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	change, err := h.orders.UpdateStatus(c.Request.Context(), req.OrderID.String(), strings.TrimSpace(req.Status))
	if err != nil {
		h.resp.fail(c, err, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      fmt.Sprintf("Order status updated from %s to %s", change.OldStatus, change.NewStatus),
		"order_id":     change.Order.ID,
		"order_number": change.Order.OrderNumber(),
		"old_status":   change.OldStatus,
		"new_status":   change.NewStatus,
		"status":       change.NewStatus,
	})
}

func orderLines(order *models.Order) []gin.H {
	items := make([]gin.H, 0, len(order.Items))
	for i := range order.Items {
		line := &order.Items[i]
		items = append(items, gin.H{
			"id":                   line.MenuItemID,
			"name":                 line.ItemName(),
			"quantity":             line.Quantity,
			"price":                line.Price,
			"selected_variation":   nullable(line.SelectedVariation),
			"special_instructions": line.SpecialInstructions,
		})
	}
	return items
}

func (h *OrderHandler) CustomerOrders(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("customer_id"))
	if raw == "" {
		h.plain.abort(c, http.StatusBadRequest, "customer_id parameter required")
		return
	}
	id, ok := parseQueryID(raw)
	if !ok {
		h.resp.abort(c, http.StatusNotFound, "Customer not found")
		return
	}

	customer, orders, err := h.orders.CustomerOrders(id)
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch orders")
		return
	}

	data := make([]gin.H, 0, len(orders))
	for i := range orders {
		order := &orders[i]
		data = append(data, gin.H{
			"order_id":         order.ID,
			"order_number":     order.OrderNumber(),
			"total_amount":     order.TotalAmount,
			"status":           order.Status,
			"order_date":       isoTime(order.OrderDate),
			"delivery_address": order.DeliveryAddress,
			"items_count":      len(order.Items),
			"items":            orderLines(order),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"customer_id":   customer.ID,
		"customer_name": customer.Name,
		"total_orders":  len(data),
		"orders":        data,
	})
}

func (h *OrderHandler) OrderDetail(c *gin.Context) {
	id, ok := parseQueryID(c.Param("order_id"))
	if !ok {
		h.plain.abort(c, http.StatusNotFound, "Order not found")
		return
	}

	order, err := h.orders.GetOrder(id)
	if err != nil {
		h.plain.fail(c, err, "Failed to fetch order")
		return
	}

	items := make([]gin.H, 0, len(order.Items))
	for i := range order.Items {
		line := &order.Items[i]
		items = append(items, gin.H{
			"menu_item": line.ItemName(),
			"quantity":  line.Quantity,
			"price":     line.Price,
			"subtotal":  line.Subtotal(),
		})
	}

	var customer interface{}
	if order.Customer != nil {
		customer = order.Customer.Name
	}

	c.JSON(http.StatusOK, gin.H{
		"order": gin.H{
			"id":               order.ID,
			"order_number":     order.OrderNumber(),
			"customer":         customer,
			"total_amount":     order.TotalAmount,
			"status":           order.Status,
			"order_date":       isoTime(order.OrderDate),
			"delivery_address": order.DeliveryAddress,
			"phone":            order.Phone,
			"items":            items,
		},
	})
}
