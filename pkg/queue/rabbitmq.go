package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"umkm-reels/pkg/config"
	"umkm-reels/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ModerationExchange  = "moderation"
	ModerationQueueName = "moderation_events"
)

const (
	EventSellerBlocked   = "seller.blocked"
	EventSellerUnblocked = "seller.unblocked"
	EventReelBlocked     = "reel.blocked"
	EventReelUnblocked   = "reel.unblocked"
	EventUserRoleChanged = "user.role_changed"
)

var moderationRoutingKeys = []string{
	EventSellerBlocked,
	EventSellerUnblocked,
	EventReelBlocked,
	EventReelUnblocked,
	EventUserRoleChanged,
}

// ModerationEvent is published after an administrator changes moderation
// state. Type doubles as the routing key.
type ModerationEvent struct {
	Type       string            `json:"type"`
	SubjectID  string            `json:"subject_id"`
	ActorID    string            `json:"actor_id"`
	Reason     string            `json:"reason,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
	mu      sync.Mutex
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	if cfg.RabbitMQHost == "" {
		return nil, fmt.Errorf("RABBITMQ_HOST is not set")
	}

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		ModerationExchange, // name
		"direct",           // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		ModerationQueueName, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	for _, key := range moderationRoutingKeys {
		if err := channel.QueueBind(ModerationQueueName, key, ModerationExchange, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to bind queue to %s: %w", key, err)
		}
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) PublishModerationEvent(ctx context.Context, event ModerationEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// amqp channels are not safe for concurrent publishing
	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.PublishWithContext(ctx,
		ModerationExchange, // exchange
		event.Type,         // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish %s for %s: %v", event.Type, event.SubjectID, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published %s for %s", event.Type, event.SubjectID)
	return nil
}
