package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/property-backoffice/internal/notify"
)

// Publisher enqueues notification jobs.  It keeps one connection and
// channel open and redials lazily after a failure.  It implements
// notify.Notifier so workflows can hand messages to the worker instead of
// sending them inline.
type Publisher struct {
	url  string
	topo Topology
	log  *log.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url string, topo Topology, l *log.Logger) *Publisher {
	return &Publisher{url: url, topo: topo, log: l}
}

// channel returns an open channel, dialing and declaring the topology when
// needed.  Callers hold p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := p.topo.Declare(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

// Publish marks job persistent and routes it by channel.
func (p *Publisher) Publish(ctx context.Context, job Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	ch, err := p.channel()
	if err != nil {
		p.log.Errorf("rabbitmq: %v", err)
		return err
	}
	err = ch.PublishWithContext(ctx, p.topo.Exchange, RoutingKey(job.Message.Channel), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    job.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.log.Errorf("rabbitmq: publish %s failed: %v", job.ID, err)
		p.reset()
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

// Notify enqueues m as a new job.
func (p *Publisher) Notify(ctx context.Context, m notify.Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return p.Publish(ctx, NewJob(m))
}

// Close releases the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
