package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	err      error
}

func (c *recordingChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *recordingChannel) Close() error { return nil }

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &recordingChannel{}
	p := &AMQPPublisher{ch: ch}

	err := p.Publish(context.Background(), OrderCreated, OrderEvent{OrderID: 7, OrderNumber: "ORD000007", Status: "pending", TotalAmount: 300})
	require.NoError(t, err)

	assert.Equal(t, Exchange, ch.exchange)
	assert.Equal(t, OrderCreated, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp091.Persistent, ch.msg.DeliveryMode)

	var got OrderEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, "ORD000007", got.OrderNumber)
	assert.Equal(t, int64(300), got.TotalAmount)
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	p := &AMQPPublisher{ch: &recordingChannel{err: errors.New("channel closed")}}
	err := p.Publish(context.Background(), OrderStatusChanged, OrderEvent{})
	assert.ErrorContains(t, err, "order.status_changed")
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), OrderCreated, nil))
	assert.NoError(t, p.Close())
}
