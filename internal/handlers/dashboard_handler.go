package handlers

import (
	"log/slog"
	"net/http"

	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"
	"seaside_restaurant/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard services.DashboardService
	resp      responder
}

func NewDashboardHandler(dashboard services.DashboardService, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, resp: responder{log: log, withSuccess: true}}
}

func customerName(order *models.Order) string {
	if order.Customer == nil {
		return ""
	}
	return order.Customer.Name
}

func customerPhone(order *models.Order) string {
	if order.Customer == nil {
		return ""
	}
	return order.Customer.Phone
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboard.Stats()
	if err != nil {
		h.resp.fail(c, err, "Failed to load dashboard")
		return
	}

	recent := make([]gin.H, 0, len(stats.RecentOrders))
	for i := range stats.RecentOrders {
		order := &stats.RecentOrders[i]
		recent = append(recent, gin.H{
			"order_id":      order.ID,
			"order_number":  order.OrderNumber(),
			"customer_name": customerName(order),
			"total_amount":  order.TotalAmount,
			"status":        order.Status,
			"order_date":    isoTime(order.OrderDate),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"today_orders":     stats.TodayOrders,
			"today_revenue":    stats.TodayRevenue,
			"total_orders":     stats.TotalOrders,
			"total_customers":  stats.TotalCustomers,
			"total_menu_items": stats.TotalMenuItems,
			"status_counts":    stats.StatusCounts,
		},
		"recent_orders": recent,
	})
}

// AdminOrders searches orders by status, date range (YYYY-MM-DD) and a free
// text term matched against order numbers and customer fields.
func (h *DashboardHandler) AdminOrders(c *gin.Context) {
	filter := repository.ParseOrderFilter(
		c.Query("status"),
		c.Query("date_from"),
		c.Query("date_to"),
		c.Query("search"),
	)

	listing, err := h.dashboard.Orders(filter)
	if err != nil {
		h.resp.fail(c, err, "Failed to fetch orders")
		return
	}

	orders := make([]gin.H, 0, len(listing.Orders))
	for i := range listing.Orders {
		order := &listing.Orders[i]
		orders = append(orders, gin.H{
			"order_id":         order.ID,
			"order_number":     order.OrderNumber(),
			"customer_name":    customerName(order),
			"customer_phone":   customerPhone(order),
			"total_amount":     order.TotalAmount,
			"status":           order.Status,
			"order_date":       isoTime(order.OrderDate),
			"delivery_address": order.DeliveryAddress,
			"phone":            order.Phone,
			"items_count":      len(order.Items),
			"items":            orderLines(order),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"total_orders":     listing.TotalOrders,
		"status_counts":    listing.StatusCounts,
		"filtered_orders":  len(orders),
		"orders":           orders,
		"valid_statuses":   models.TrackableStatusNames(),
		"all_orders_count": listing.AllOrdersCount,
	})
}
