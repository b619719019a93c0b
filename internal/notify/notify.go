// Package notify delivers outbound SMS and email.  Every sender satisfies
// Notifier so workflows can be handed a direct sender, a channel router or
// the queue publisher interchangeably.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/gommon/log"
)

// Channel selects the delivery medium of a Message.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Message is one outbound notification.  Subject is ignored for SMS.
// Reference identifies the record that triggered it (e.g. a maintenance
// request id) and is only used for logging and tracing.
type Message struct {
	Channel   Channel `json:"channel"`
	To        string  `json:"to"`
	Subject   string  `json:"subject,omitempty"`
	Body      string  `json:"body"`
	Reference string  `json:"reference,omitempty"`
}

// Validate checks the fields every sender needs.
func (m Message) Validate() error {
	switch m.Channel {
	case ChannelSMS, ChannelEmail:
	default:
		return fmt.Errorf("notify: unknown channel %q", m.Channel)
	}
	if m.To == "" || m.Body == "" {
		return errors.New("notify: recipient and body are required")
	}
	return nil
}

// Notifier sends (or enqueues) one message.
type Notifier interface {
	Notify(ctx context.Context, m Message) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, m Message) error

func (f NotifierFunc) Notify(ctx context.Context, m Message) error { return f(ctx, m) }

// ErrGateway is wrapped by senders when the downstream gateway rejects or
// cannot be reached.
var ErrGateway = errors.New("notification gateway failure")

// Console logs messages instead of sending them.  It stands in for a
// gateway that has not been configured.
type Console struct {
	log *log.Logger
}

func NewConsole(l *log.Logger) *Console { return &Console{log: l} }

func (c *Console) Notify(_ context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	c.log.Infof("[notify:%s] to=%s subject=%q ref=%s :: %s", m.Channel, m.To, m.Subject, m.Reference, m.Body)
	return nil
}

// Router dispatches by channel to the SMS and email senders.
type Router struct {
	SMS   Notifier
	Email Notifier
}

func (r *Router) Notify(ctx context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	var n Notifier
	switch m.Channel {
	case ChannelSMS:
		n = r.SMS
	case ChannelEmail:
		n = r.Email
	}
	if n == nil {
		return fmt.Errorf("notify: no sender for channel %s", m.Channel)
	}
	return n.Notify(ctx, m)
}
