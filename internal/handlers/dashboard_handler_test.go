package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardHandler_Dashboard(t *testing.T) {
	s := newTestServer(t)
	_, tikka, soup := seedMenu(t, s)
	customer := s.seedCustomer(t)
	placeOrder(t, s, customer.ID, tikka, soup)

	w, body := s.get(t, "/Dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["today_orders"])
	assert.Equal(t, float64(300), stats["today_revenue"])
	assert.Equal(t, float64(1), stats["total_customers"])
	assert.Equal(t, float64(3), stats["total_menu_items"])

	recent := body["recent_orders"].([]interface{})
	require.Len(t, recent, 1)
	assert.Equal(t, "Asha Nair", recent[0].(map[string]interface{})["customer_name"])
}

func TestDashboardHandler_AdminOrders(t *testing.T) {
	s := newTestServer(t)
	_, tikka, soup := seedMenu(t, s)
	customer := s.seedCustomer(t)
	placeOrder(t, s, customer.ID, tikka, soup)
	placeOrder(t, s, customer.ID, tikka, soup)
	_, _ = s.post(t, "/UpdateOrderStatus", `{"order_id":2,"status":"cancelled"}`)

	_, body := s.get(t, "/AdminOrdersView?status=cancelled")
	assert.Equal(t, float64(1), body["total_orders"])
	assert.Equal(t, float64(1), body["filtered_orders"])
	assert.Equal(t, float64(2), body["all_orders_count"])
	assert.Len(t, body["valid_statuses"], 6)

	order := body["orders"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "ORD000002", order["order_number"])
	assert.Equal(t, "9876543210", order["customer_phone"])

	_, body = s.get(t, "/AdminOrdersView?status=ready&search=ORD1")
	assert.Equal(t, float64(1), body["total_orders"])

	_, body = s.get(t, "/AdminOrdersView/?search=asha")
	assert.Equal(t, float64(2), body["filtered_orders"])
}
