package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth      *AuthHandler
	Category  *CategoryHandler
	Menu      *MenuHandler
	Order     *OrderHandler
	Inquiry   *InquiryHandler
	Dashboard *DashboardHandler
	Upload    *UploadHandler
}

// route registers path both with and without a trailing slash, since the
// frontend uses either form.
func route(r gin.IRoutes, method, path string, handler gin.HandlerFunc) {
	r.Handle(method, path, handler)
	if path != "/" && !strings.Contains(path, ":") {
		r.Handle(method, path+"/", handler)
	}
}

func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.RedirectTrailingSlash = false

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Accounts
	route(r, http.MethodPost, "/signup", h.Auth.SignUp)
	route(r, http.MethodPost, "/login", h.Auth.Login)
	route(r, http.MethodPost, "/logout", h.Auth.Logout)
	route(r, http.MethodPost, "/forgot-password", h.Auth.ForgotPassword)
	route(r, http.MethodPost, "/reset-password", h.Auth.ResetPassword)
	route(r, http.MethodPost, "/change-password", h.Auth.ChangePassword)
	route(r, http.MethodPost, "/Owner-Login", h.Auth.OwnerLogin)
	route(r, http.MethodPost, "/create-admin", h.Auth.CreateAdmin)

	// Categories
	route(r, http.MethodGet, "/categories", h.Category.List)
	route(r, http.MethodGet, "/deletedcategories", h.Category.ListDeleted)
	route(r, http.MethodPost, "/create-categories", h.Category.Create)
	route(r, http.MethodPost, "/delete-categories", h.Category.Delete)
	route(r, http.MethodPost, "/updatedeletedcategories", h.Category.Restore)

	// Menu
	route(r, http.MethodGet, "/complete-menu", h.Menu.CompleteMenu)
	route(r, http.MethodGet, "/category-menu", h.Menu.CategoryMenu)
	route(r, http.MethodGet, "/menu-item", h.Menu.MenuItem)
	route(r, http.MethodGet, "/menu/search", h.Menu.Search)
	route(r, http.MethodGet, "/GetAllMenu", h.Menu.GetAll)
	route(r, http.MethodGet, "/AdminGetAllMenu", h.Menu.AdminGetAll)
	route(r, http.MethodPost, "/createmenuitem", h.Menu.Create)
	route(r, http.MethodPost, "/updatemenuitem", h.Menu.Update)
	route(r, http.MethodPost, "/deletemenuitem", h.Menu.Delete)

	// Orders
	route(r, http.MethodPost, "/customer/create", h.Order.CreateCustomer)
	route(r, http.MethodPost, "/order/create", h.Order.CreateOrder)
	route(r, http.MethodPost, "/UpdateOrderStatus", h.Order.UpdateStatus)
	route(r, http.MethodGet, "/customer_orders", h.Order.CustomerOrders)
	route(r, http.MethodGet, "/order/:order_id", h.Order.OrderDetail)
	route(r, http.MethodGet, "/order/:order_id/", h.Order.OrderDetail)

	// Inquiries
	route(r, http.MethodPost, "/inquirycreate", h.Inquiry.Create)
	route(r, http.MethodPost, "/inquiryupdate", h.Inquiry.UpdateStatus)
	route(r, http.MethodGet, "/inquirylist", h.Inquiry.List)

	// Owner console
	route(r, http.MethodGet, "/Dashboard", h.Dashboard.Dashboard)
	route(r, http.MethodGet, "/AdminOrdersView", h.Dashboard.AdminOrders)
	route(r, http.MethodPost, "/upload", h.Upload.Upload)
}
