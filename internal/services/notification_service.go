package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seaside_restaurant/internal/models"
)

// MessageSender delivers a plain text message to a phone number.
// *whatsapp.Client satisfies it.
type MessageSender interface {
	SendTextMessage(ctx context.Context, phone, message string) error
}

type NotificationService interface {
	OrderStatusChanged(ctx context.Context, order *models.Order)
}

// notifyTimeout bounds how long a status update can hold the request that
// triggered it.
const notifyTimeout = 3 * time.Second

type notificationService struct {
	sender  MessageSender
	timeout time.Duration
	log     *slog.Logger
}

func NewNotificationService(sender MessageSender, log *slog.Logger) NotificationService {
	return &notificationService{sender: sender, timeout: notifyTimeout, log: log}
}

var statusMessages = map[string]string{
	string(models.OrderPending):        "is pending confirmation.",
	string(models.OrderConfirmed):      "has been confirmed.",
	string(models.OrderPreparing):      "is being prepared.",
	string(models.OrderOutForDelivery): "is out for delivery.",
	string(models.OrderDelivered):      "has been delivered. Enjoy your meal!",
	string(models.OrderCancelled):      "has been cancelled.",
}

func statusMessage(order *models.Order) string {
	text, ok := statusMessages[order.Status]
	if !ok {
		text = "is now " + order.Status + "."
	}
	return fmt.Sprintf("Seaside Restaurant: your order %s %s", order.OrderNumber(), text)
}

// OrderStatusChanged sends the customer a WhatsApp update. The send is not
// cancelled with ctx, only bounded by the service timeout. Failures are only logged.
func (s *notificationService) OrderStatusChanged(ctx context.Context, order *models.Order) {
	if s.sender == nil || order.Phone == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.sender.SendTextMessage(ctx, order.Phone, statusMessage(order)); err != nil {
		s.log.Warn("failed to send order status notification", "order_id", order.ID, "error", err)
		return
	}
	s.log.Info("order status notification sent", "order_id", order.ID, "status", order.Status)
}
