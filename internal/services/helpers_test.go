package services

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"seaside_restaurant/internal/database"
	"seaside_restaurant/internal/logger"
	"seaside_restaurant/internal/models"
	"seaside_restaurant/pkg/mailer"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)
	return db
}

func testLogger() *slog.Logger {
	return logger.Discard().Logger
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeThrottle struct {
	seen map[string]bool
}

func (f *fakeThrottle) Allow(_ context.Context, key string, _ time.Duration) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

type publishedEvent struct {
	key   string
	event interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, key string, event interface{}) error {
	p.events = append(p.events, publishedEvent{key: key, event: event})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeSender struct {
	phones   []string
	messages []string
	err      error
}

func (s *fakeSender) SendTextMessage(_ context.Context, phone, message string) error {
	if s.err != nil {
		return s.err
	}
	s.phones = append(s.phones, phone)
	s.messages = append(s.messages, message)
	return nil
}

func seedCategory(t *testing.T, db *gorm.DB, name string, status int) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Status: status}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedSingle(t *testing.T, db *gorm.DB, category *models.Category, name string, p int64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		Name:        name,
		CategoryID:  category.ID,
		PricingType: models.PricingSingle,
		Price:       price(p),
		IsAvailable: true,
		Status:      models.StatusActive,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func seedCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()
	customer := &models.Customer{Name: "Asha Nair", Email: "asha@example.com", Phone: "9876543210", Address: "12 Beach Road"}
	require.NoError(t, db.Create(customer).Error)
	return customer
}
