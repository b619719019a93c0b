// Package queue carries notifications over RabbitMQ: the API publishes
// jobs and the worker delivers them with delayed retry and
// dead-lettering.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/property-backoffice/internal/notify"
)

// Routing keys on the notifications exchange.
const (
	RoutingSMS   = "notify.sms"
	RoutingEmail = "notify.email"
	RoutingRetry = "notify.retry"
	bindingKey   = "notify.*"
)

// Job is the JSON body of every queued notification.  Attempt counts
// failed deliveries so far; it starts at zero.
type Job struct {
	ID         string         `json:"id"`
	Message    notify.Message `json:"message"`
	Attempt    int            `json:"attempt"`
	EnqueuedAt time.Time      `json:"enqueued_at"`
	LastError  string         `json:"last_error,omitempty"`
}

// NewJob wraps m with a fresh id.
func NewJob(m notify.Message) Job {
	return Job{ID: uuid.NewString(), Message: m, EnqueuedAt: time.Now().UTC()}
}

// RoutingKey returns the key a message is published under.
func RoutingKey(ch notify.Channel) string {
	if ch == notify.ChannelEmail {
		return RoutingEmail
	}
	return RoutingSMS
}
