// Package queue_publisher publishes domain events to RabbitMQ.  Errors are
// logged and returned so callers can ignore them without interrupting
// startup.
package queue_publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/car-catalog/internal/queue"
)

// Publisher sends events to one broker.  A Publisher with an empty URL is
// disabled and every publish is a no-op.
type Publisher struct {
	url    string
	logger *zap.Logger
	dial   func(url string) (*amqp.Connection, error)
}

// NewPublisher returns a publisher for url.
func NewPublisher(url string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{url: url, logger: logger, dial: amqp.Dial}
}

// Enabled reports whether a broker URL is configured.
func (p *Publisher) Enabled() bool { return p.url != "" }

// PublishCatalogSeeded publishes a CatalogSeededEvent to the catalog.seeded
// queue as a persistent JSON message.
func (p *Publisher) PublishCatalogSeeded(ctx context.Context, event q.CatalogSeededEvent) error {
	if !p.Enabled() {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.publish(ctx, q.CatalogSeededQueue, body); err != nil {
		p.logger.Warn("rabbitmq: publish catalog.seeded failed", zap.Error(err))
		return err
	}
	p.logger.Info("rabbitmq: published catalog.seeded", zap.Int64("cars", event.Cars))
	return nil
}

func (p *Publisher) publish(ctx context.Context, queue string, body []byte) error {
	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
