package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"telescope-scheduler/internal/pkg/config"
	"telescope-scheduler/internal/pkg/errs"
	"telescope-scheduler/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

var errBrokerClosed = errs.New("audit broker is closed")

// RabbitMQPublisher forwards audit entries to a durable queue on the default
// exchange. The channel is reopened lazily after the broker closes it.
type RabbitMQPublisher struct {
	url   string
	queue string

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

func NewRabbitMQPublisher(cfg config.BrokerConfig) (*RabbitMQPublisher, error) {
	p := &RabbitMQPublisher{url: cfg.URL, queue: cfg.AuditQueue}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.channelLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, entry shared.AuditEntry) error {
	body, err := json.Marshal(entry)
	if err != nil {
		return errs.Wrap(err, "failed to marshal audit entry")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    entry.ID.String(),
		Timestamp:    time.Now().UTC(),
		Type:         string(entry.AffectedTable) + "." + string(entry.Action),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return errs.Wrap(err, "failed to publish audit entry")
	}
	return nil
}

// channelLocked returns an open channel, dialing and declaring the queue
// as needed. Callers hold p.mu.
func (p *RabbitMQPublisher) channelLocked() (*amqp.Channel, error) {
	if p.closed {
		return nil, errBrokerClosed
	}
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, errs.Wrap(err, "failed to dial rabbitmq")
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, errs.Wrap(err, "failed to open rabbitmq channel")
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, errs.Wrap(err, "failed to declare audit queue")
	}
	p.ch = ch
	return ch, nil
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	if p.ch != nil && !p.ch.IsClosed() {
		if err := p.ch.Close(); err != nil {
			slog.Warn("failed to close rabbitmq channel", "error", err.Error())
		}
	}
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}
