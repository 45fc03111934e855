package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/jonathan/resume-matcher/internal/config"
)

// Publisher sends a response body under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Broker owns the AMQP connection plus one channel for consuming and one for publishing.
type Broker struct {
	conn      *amqp.Connection
	consumeCh *amqp.Channel
	publisher *AMQPPublisher
	cfg       config.WorkerConfig
}

// Dial connects to the broker and declares the durable request queue and the
// topic exchange responses are published to.
func Dial(cfg config.WorkerConfig) (*Broker, error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("error connecting to broker: %w", err)
	}

	b := &Broker{conn: conn, cfg: cfg}
	if err := b.setup(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return b, nil
}

func (b *Broker) setup() error {
	consumeCh, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening consume channel: %w", err)
	}
	b.consumeCh = consumeCh

	if _, err := consumeCh.QueueDeclare(
		b.cfg.Queue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", b.cfg.Queue, err)
	}
	if err := consumeCh.Qos(b.cfg.Consumers, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	publishCh, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("error opening publish channel: %w", err)
	}
	if err := publishCh.ExchangeDeclare(
		b.cfg.ResultsExchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", b.cfg.ResultsExchange, err)
	}
	b.publisher = &AMQPPublisher{ch: publishCh, exchange: b.cfg.ResultsExchange}
	return nil
}

// Deliveries starts consuming the request queue with manual acknowledgement.
func (b *Broker) Deliveries(consumerTag string) (<-chan amqp.Delivery, error) {
	msgs, err := b.consumeCh.Consume(
		b.cfg.Queue,
		consumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("error consuming queue %s: %w", b.cfg.Queue, err)
	}
	return msgs, nil
}

// Publisher returns the response publisher.
func (b *Broker) Publisher() *AMQPPublisher {
	return b.publisher
}

// Close closes the channels and the connection.
func (b *Broker) Close() error {
	if b.publisher != nil {
		_ = b.publisher.ch.Close()
	}
	if b.consumeCh != nil {
		_ = b.consumeCh.Close()
	}
	return b.conn.Close()
}

// AMQPPublisher publishes persistent JSON messages to a topic exchange.
// AMQP channels are not safe for concurrent publishing, so calls are serialized.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       *amqp.Channel
	exchange string
}

// Publish sends body under routingKey.
func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Publish(
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}
