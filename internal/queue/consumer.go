package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/iliyamo/property-backoffice/internal/notify"
)

// Retrier schedules a failed job for another attempt.
type Retrier interface {
	Retry(ctx context.Context, job Job) error
}

// channelRetrier publishes to the TTL retry queue through the default
// exchange; the broker dead-letters it back to the main queue once the
// TTL expires.
type channelRetrier struct {
	ch    *amqp.Channel
	queue string
}

func (r channelRetrier) Retry(ctx context.Context, job Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return r.ch.PublishWithContext(ctx, "", r.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// ConsumerConfig configures the worker.
type ConsumerConfig struct {
	URL         string
	Topology    Topology
	MaxAttempts int
	Prefetch    int
}

// Consumer delivers queued notifications through a notify.Notifier.
// Deliveries are processed one at a time.
type Consumer struct {
	cfg    ConsumerConfig
	sender notify.Notifier
	log    *log.Logger
}

func NewConsumer(cfg ConsumerConfig, sender notify.Notifier, l *log.Logger) *Consumer {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Prefetch < 1 {
		cfg.Prefetch = 10
	}
	return &Consumer{cfg: cfg, sender: sender, log: l}
}

// Run connects to the broker and consumes until ctx is cancelled.  Lost
// connections are redialed with exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		err := c.consume(ctx)
		if ctx.Err() != nil {
			return nil
		}
		c.log.Warnf("notify-worker: %v; reconnecting in %s", err, backoff)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := c.cfg.Topology.Declare(ch); err != nil {
		return err
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	msgs, err := ch.Consume(c.cfg.Topology.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}
	c.log.Infof("notify-worker: consuming %s", c.cfg.Topology.Queue)

	retry := channelRetrier{ch: ch, queue: c.cfg.Topology.RetryQueue()}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.Handle(ctx, d, retry)
		}
	}
}

// Outcome reports what Handle did with a delivery.
type Outcome string

const (
	Delivered    Outcome = "delivered"
	Retried      Outcome = "retried"
	DeadLettered Outcome = "dead-lettered"
	Requeued     Outcome = "requeued"
)

// Handle processes one delivery:
//
//   - malformed bodies are dead-lettered straight away;
//   - a successful send is acked;
//   - a failed send is republished to the retry queue with Attempt+1 and
//     acked, until MaxAttempts failures, after which it is dead-lettered.
//
// If the retry publish itself fails the delivery is requeued.
func (c *Consumer) Handle(ctx context.Context, d amqp.Delivery, retry Retrier) Outcome {
	ctx, span := otel.Tracer("notify-worker").Start(ctx, "notify.deliver")
	defer span.End()

	var job Job
	if err := json.Unmarshal(d.Body, &job); err != nil {
		c.log.Errorf("notify-worker: malformed job %q: %v", d.MessageId, err)
		span.SetStatus(codes.Error, "malformed")
		_ = d.Nack(false, false)
		return DeadLettered
	}
	if err := job.Message.Validate(); err != nil {
		c.log.Errorf("notify-worker: invalid job %s: %v", job.ID, err)
		span.SetStatus(codes.Error, "invalid")
		_ = d.Nack(false, false)
		return DeadLettered
	}
	span.SetAttributes(
		attribute.String("job.id", job.ID),
		attribute.String("notify.channel", string(job.Message.Channel)),
		attribute.Int("job.attempt", job.Attempt),
	)

	err := c.sender.Notify(ctx, job.Message)
	if err == nil {
		_ = d.Ack(false)
		return Delivered
	}
	span.RecordError(err)

	job.Attempt++
	job.LastError = err.Error()
	if job.Attempt >= c.cfg.MaxAttempts {
		c.log.Errorf("notify-worker: job %s (%s to %s) failed %d times, dead-lettering: %v",
			job.ID, job.Message.Channel, job.Message.To, job.Attempt, err)
		span.SetStatus(codes.Error, "dead-lettered")
		_ = d.Nack(false, false)
		return DeadLettered
	}
	if perr := retry.Retry(ctx, job); perr != nil {
		c.log.Errorf("notify-worker: schedule retry for %s: %v", job.ID, perr)
		_ = d.Nack(false, true)
		return Requeued
	}
	c.log.Warnf("notify-worker: job %s attempt %d failed, retrying: %v", job.ID, job.Attempt, err)
	_ = d.Ack(false)
	return Retried
}
