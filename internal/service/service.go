// Package service holds the workflows that touch more than one entity:
// contractor assignment and the tenant lease lifecycle.  Both commit the
// state change first and then notify; a notification failure is logged and
// returned as a warning, never as an error.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/iliyamo/property-backoffice/internal/notify"
)

var tracer = otel.Tracer("github.com/iliyamo/property-backoffice/internal/service")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}

// clock is shared by the services so tests can pin time.
type clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// deliver hands every message to n and collects failures as warnings.
func deliver(ctx context.Context, n notify.Notifier, l *log.Logger, msgs ...notify.Message) []string {
	var warnings []string
	for _, m := range msgs {
		if err := n.Notify(ctx, m); err != nil {
			l.Warnf("notify %s to %s (ref %s): %v", m.Channel, m.To, m.Reference, err)
			warnings = append(warnings, fmt.Sprintf("%s notification to %s failed: %v", m.Channel, m.To, err))
		}
	}
	return warnings
}
