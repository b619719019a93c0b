package queue

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Topology names the broker objects shared by publisher and consumer.
//
//	Exchange (topic) --notify.*--> Queue --dead-letter--> Exchange.dlx --#--> Queue.dlq
//	Queue.retry (TTL = RetryDelay) --dead-letter notify.retry--> Exchange
type Topology struct {
	Exchange   string
	Queue      string
	RetryDelay time.Duration
}

func (t Topology) DLX() string        { return t.Exchange + ".dlx" }
func (t Topology) DLQ() string        { return t.Queue + ".dlq" }
func (t Topology) RetryQueue() string { return t.Queue + ".retry" }

// declarer is the subset of *amqp.Channel used to declare the topology.
type declarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// Declare creates the exchanges and queues idempotently.
func (t Topology) Declare(ch declarer) error {
	if err := ch.ExchangeDeclare(t.Exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", t.Exchange, err)
	}
	if err := ch.ExchangeDeclare(t.DLX(), "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare dlx %s: %w", t.DLX(), err)
	}
	if _, err := ch.QueueDeclare(t.DLQ(), true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare dlq %s: %w", t.DLQ(), err)
	}
	if err := ch.QueueBind(t.DLQ(), "#", t.DLX(), false, nil); err != nil {
		return fmt.Errorf("bind dlq: %w", err)
	}
	if _, err := ch.QueueDeclare(t.Queue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange": t.DLX(),
	}); err != nil {
		return fmt.Errorf("declare queue %s: %w", t.Queue, err)
	}
	if err := ch.QueueBind(t.Queue, bindingKey, t.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	if _, err := ch.QueueDeclare(t.RetryQueue(), true, false, false, false, amqp.Table{
		"x-message-ttl":             t.RetryDelay.Milliseconds(),
		"x-dead-letter-exchange":    t.Exchange,
		"x-dead-letter-routing-key": RoutingRetry,
	}); err != nil {
		return fmt.Errorf("declare retry queue %s: %w", t.RetryQueue(), err)
	}
	return nil
}
