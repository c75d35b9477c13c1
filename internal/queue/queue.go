package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	queueConfig "github.com/babylonlabs-io/staking-queue-client/config"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	TransferIntentQueueName = "transfer_intents"
	AuditEventQueueName     = "staking_audit_events"

	queueTypeArg         = "x-queue-type"
	connectionNamePrefix = "staking-reward-ledger-"
)

// Publisher ships the intents and audit events produced by ledger calls.
type Publisher interface {
	PublishTransferIntent(ctx context.Context, ev *TransferIntentEvent) error
	PublishAuditEvent(ctx context.Context, ev *AuditEvent) error
	Shutdown()
}

type QueueManager struct {
	cfg  *queueConfig.QueueConfig
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewQueueManager connects to the broker and declares both queues. A nil
// config yields a publisher that only logs.
func NewQueueManager(cfg *queueConfig.QueueConfig) (Publisher, error) {
	if cfg == nil {
		log.Warn().Msg("queue is not configured, transfer intents will only be logged")
		return NewNoopPublisher(), nil
	}

	properties := amqp.NewConnectionProperties()
	properties.SetClientConnectionName(connectionNamePrefix + uuid.NewString()[:8])

	conn, err := amqp.DialConfig(dialURL(cfg), amqp.Config{Properties: properties})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open queue channel: %w", err)
	}

	for _, name := range []string{TransferIntentQueueName, AuditEventQueueName} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, queueArgs(cfg)); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
	}

	return &QueueManager{cfg: cfg, conn: conn, ch: ch}, nil
}

func dialURL(cfg *queueConfig.QueueConfig) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.QueueUser, cfg.QueuePassword),
		Host:   cfg.Url,
	}
	return u.String()
}

func queueArgs(cfg *queueConfig.QueueConfig) amqp.Table {
	if cfg.QueueType == "" {
		return nil
	}
	return amqp.Table{queueTypeArg: cfg.QueueType}
}

func (qm *QueueManager) PublishTransferIntent(ctx context.Context, ev *TransferIntentEvent) error {
	return qm.publish(ctx, TransferIntentQueueName, ev.EventID, ev)
}

func (qm *QueueManager) PublishAuditEvent(ctx context.Context, ev *AuditEvent) error {
	return qm.publish(ctx, AuditEventQueueName, ev.EventID, ev)
}

func (qm *QueueManager) publish(ctx context.Context, queueName, messageID string, payload any) error {
	msg, err := newPublishing(messageID, payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.QueueProcessingTimeout)
	defer cancel()

	// channels are not safe for concurrent publishing
	qm.mu.Lock()
	defer qm.mu.Unlock()

	if err := qm.ch.PublishWithContext(ctx, "", queueName, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queueName, err)
	}

	log.Ctx(ctx).Debug().Str("queue", queueName).Str("message_id", messageID).Msg("message published")
	return nil
}

func newPublishing(messageID string, payload any) (amqp.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal message %s: %w", messageID, err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now(),
		Body:         body,
	}, nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")

	qm.mu.Lock()
	defer qm.mu.Unlock()

	if err := qm.ch.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close queue channel")
	}
	if err := qm.conn.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close queue connection")
	}
}

type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (NoopPublisher) PublishTransferIntent(ctx context.Context, ev *TransferIntentEvent) error {
	log.Ctx(ctx).Info().
		Str("event_id", ev.EventID).
		Str("denom", ev.Denom).
		Str("amount", ev.Amount).
		Str("recipient", ev.Recipient).
		Msg("transfer intent")
	return nil
}

func (NoopPublisher) PublishAuditEvent(ctx context.Context, ev *AuditEvent) error {
	log.Ctx(ctx).Debug().Str("event_id", ev.EventID).Str("action", ev.Action).Msg("audit event")
	return nil
}

func (NoopPublisher) Shutdown() {}
