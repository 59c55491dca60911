package services

import (
	"context"
	"testing"
	"time"

	"seaside_restaurant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stallingSender blocks until its context ends and records why.
type stallingSender struct {
	err error
}

func (s *stallingSender) SendTextMessage(ctx context.Context, _, _ string) error {
	<-ctx.Done()
	s.err = ctx.Err()
	return s.err
}

func TestNotificationService_DefaultTimeout(t *testing.T) {
	service := NewNotificationService(&fakeSender{}, testLogger()).(*notificationService)
	assert.Equal(t, 3*time.Second, service.timeout)
}

func TestNotificationService_SlowSenderIsBounded(t *testing.T) {
	sender := &stallingSender{}
	service := &notificationService{sender: sender, timeout: 20 * time.Millisecond, log: testLogger()}
	order := &models.Order{ID: 4, Phone: "+15550001111", Status: string(models.OrderConfirmed)}

	start := time.Now()
	service.OrderStatusChanged(context.Background(), order)

	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, sender.err, context.DeadlineExceeded)
}

func TestNotificationService_IgnoresRequestCancellation(t *testing.T) {
	sender := &fakeSender{}
	service := NewNotificationService(sender, testLogger())
	order := &models.Order{ID: 4, Phone: "+15550001111", Status: string(models.OrderDelivered)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	service.OrderStatusChanged(ctx, order)

	require.Len(t, sender.messages, 1)
	assert.Equal(t, []string{"+15550001111"}, sender.phones)
}

func TestNotificationService_SkipsWithoutPhone(t *testing.T) {
	sender := &fakeSender{}
	service := NewNotificationService(sender, testLogger())

	service.OrderStatusChanged(context.Background(), &models.Order{ID: 4, Status: string(models.OrderConfirmed)})

	assert.Empty(t, sender.messages)
}
