package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// DefaultQueueName is the queue mutation notifications land on
	DefaultQueueName = "toolkit_notifications"
	// DefaultExchangeName is the direct exchange notifications route through
	DefaultExchangeName = "toolkit_events"
	// routingKey for all notification messages
	routingKey = "notifications"
)

// RabbitMQSink implements Sink and Consumer over RabbitMQ
type RabbitMQSink struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	queueName    string
	exchangeName string
}

// NewRabbitMQSink connects to RabbitMQ and declares the notification
// exchange and queue
func NewRabbitMQSink(amqpURL string) (*RabbitMQSink, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	sink := &RabbitMQSink{
		conn:         conn,
		channel:      ch,
		queueName:    DefaultQueueName,
		exchangeName: DefaultExchangeName,
	}

	if err := sink.setup(); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, fmt.Errorf("failed to setup notification queue: %w", err)
	}

	return sink, nil
}

func (s *RabbitMQSink) setup() error {
	err := s.channel.ExchangeDeclare(
		s.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = s.channel.QueueDeclare(
		s.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	err = s.channel.QueueBind(
		s.queueName,
		routingKey,
		s.exchangeName,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	return nil
}

// Publish sends one notification. Callers treat failures as advisory only.
func (s *RabbitMQSink) Publish(ctx context.Context, n *Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	err = s.channel.PublishWithContext(
		ctx,
		s.exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    n.ID.String(),
			Timestamp:    n.CreatedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

// Consume delivers notifications asynchronously on a dedicated channel.
// Messages are acked on delivery; a dropped toast is not worth a redelivery
// loop.
func (s *RabbitMQSink) Consume(ctx context.Context) (<-chan *Notification, <-chan error, error) {
	consumeCh, err := s.conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create consumer channel: %w", err)
	}

	deliveries, err := consumeCh.Consume(
		s.queueName,
		"",    // consumer tag (auto-generate)
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		if closeErr := consumeCh.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	notifChan := make(chan *Notification)
	errChan := make(chan error, 1)

	go func() {
		defer close(notifChan)
		defer close(errChan)
		defer func() {
			if err := consumeCh.Close(); err != nil {
				_ = err
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case delivery, ok := <-deliveries:
				if !ok {
					errChan <- fmt.Errorf("delivery channel closed")
					return
				}

				var n Notification
				if err := json.Unmarshal(delivery.Body, &n); err != nil {
					errChan <- fmt.Errorf("failed to unmarshal notification: %w", err)
					continue
				}

				select {
				case <-ctx.Done():
					return
				case notifChan <- &n:
				}
			}
		}
	}()

	return notifChan, errChan, nil
}

// HealthCheck verifies the connection is still open
func (s *RabbitMQSink) HealthCheck(ctx context.Context) error {
	if s.conn == nil || s.conn.IsClosed() {
		return fmt.Errorf("rabbitmq connection closed")
	}
	return nil
}

// Close closes the channel and connection
func (s *RabbitMQSink) Close() error {
	var err error
	if s.channel != nil {
		err = s.channel.Close()
	}
	if s.conn != nil {
		if closeErr := s.conn.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

var (
	_ Sink     = (*RabbitMQSink)(nil)
	_ Consumer = (*RabbitMQSink)(nil)
)
