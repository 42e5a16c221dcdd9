package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodcart-be/internal/logger"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const (
	SubjectOrderPlaced        = "orders.placed"
	SubjectOrderStatusChanged = "orders.status_changed"
)

// OrderEvent is the body published for every order lifecycle change.
type OrderEvent struct {
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	VendorID   string    `json:"vendorId"`
	Status     string    `json:"status"`
	Total      string    `json:"total,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, subject string, event OrderEvent) error
	Close()
}

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subj string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Drain() error
}

type natsPublisher struct {
	nc conn
}

// Connect dials NATS and returns a publisher. An empty url yields a no-op
// publisher so the server can run without a broker.
func Connect(url string) (Publisher, error) {
	if url == "" {
		logger.L().Warn("NATS_URL not set, order events will not be published")
		return NoopPublisher{}, nil
	}

	nc, err := nats.Connect(url,
		nats.Name("foodcart-be"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.L().Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.L().Info("nats reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	return NewPublisher(nc), nil
}

func NewPublisher(nc conn) Publisher {
	return &natsPublisher{nc: nc}
}

func (p *natsPublisher) Publish(ctx context.Context, subject string, event OrderEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	logger.FromCtx(ctx).Debug("order event published",
		zap.String("subject", subject),
		zap.String("order_id", event.OrderID),
		zap.String("status", event.Status),
	)
	return nil
}

func (p *natsPublisher) Close() {
	if err := p.nc.FlushTimeout(2 * time.Second); err != nil {
		logger.L().Warn("nats flush failed", zap.Error(err))
	}
	if err := p.nc.Drain(); err != nil {
		logger.L().Warn("nats drain failed", zap.Error(err))
	}
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, OrderEvent) error { return nil }

func (NoopPublisher) Close() {}
