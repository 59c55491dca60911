package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"seaside_restaurant/internal/database"
	"seaside_restaurant/internal/events"
	"seaside_restaurant/internal/logger"
	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"
	"seaside_restaurant/internal/services"
	"seaside_restaurant/pkg/mailer"
	"seaside_restaurant/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent []mailer.Message
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type fakeUploader struct {
	err  error
	keys []string
}

func (u *fakeUploader) Upload(_ context.Context, name string, body io.Reader, size int64, _ string) (*storage.Object, error) {
	if u.err != nil {
		return nil, u.err
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return nil, err
	}
	key := "dishes/" + name
	u.keys = append(u.keys, key)
	return &storage.Object{Key: key, URL: "https://bucket.s3.ap-south-1.amazonaws.com/" + key, Size: size}, nil
}

func (u *fakeUploader) Folder() string { return "dishes/" }

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	mail     *fakeMailer
	uploader *fakeUploader
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenTest()
	require.NoError(t, err)

	log := logger.Discard().Logger
	mail := &fakeMailer{}
	uploader := &fakeUploader{}

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	users := services.NewUserService(userRepo, customerRepo, repository.NewPasswordResetRepository(db), mail, nil,
		services.AuthSettings{SiteURL: "http://localhost:5173"}, log)
	orders := services.NewOrderService(orderRepo, customerRepo, menuRepo, events.Nop{},
		services.NewNotificationService(nil, log), log)

	router := gin.New()
	RegisterRoutes(router, Handlers{
		Auth:      NewAuthHandler(users, log),
		Category:  NewCategoryHandler(services.NewCategoryService(categoryRepo, nil), log),
		Menu:      NewMenuHandler(services.NewMenuService(categoryRepo, menuRepo, nil), log),
		Order:     NewOrderHandler(orders, log),
		Inquiry:   NewInquiryHandler(services.NewInquiryService(repository.NewInquiryRepository(db), mail, "owner@seaside.test", log), log),
		Dashboard: NewDashboardHandler(services.NewDashboardService(orderRepo, customerRepo, menuRepo), log),
		Upload:    NewUploadHandler(uploader, 1, log),
	})

	return &testServer{router: router, db: db, mail: mail, uploader: uploader}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (s *testServer) get(t *testing.T, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	return s.do(t, http.MethodGet, path, "")
}

func (s *testServer) post(t *testing.T, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	return s.do(t, http.MethodPost, path, body)
}

func (s *testServer) seedCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Status: models.StatusActive}
	require.NoError(t, s.db.Create(category).Error)
	return category
}

func (s *testServer) seedItem(t *testing.T, category *models.Category, item models.MenuItem) *models.MenuItem {
	t.Helper()
	item.CategoryID = category.ID
	item.Status = models.StatusActive
	if item.PricingType == "" {
		item.PricingType = models.PricingSingle
	}
	require.NoError(t, s.db.Create(&item).Error)
	return &item
}

func (s *testServer) seedCustomer(t *testing.T) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: "Asha Nair", Email: "asha@example.com", Phone: "9876543210", Address: "12 Beach Road"}
	require.NoError(t, s.db.Create(customer).Error)
	return customer
}

func int64Ptr(v int64) *int64 { return &v }
