package service

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/notify"
	"github.com/iliyamo/property-backoffice/internal/repository"
)

// LeaseService runs tenant registration and the decline/end transitions.
type LeaseService struct {
	tenants    repository.TenantRepository
	properties repository.PropertyRepository
	notifier   notify.Notifier
	log        *log.Logger
	now        clock
}

func NewLeaseService(st *repository.Store, n notify.Notifier, l *log.Logger) *LeaseService {
	return &LeaseService{
		tenants:    st.Tenants,
		properties: st.Properties,
		notifier:   n,
		log:        l,
		now:        utcNow,
	}
}

// Register stores t and then marks its property rented.  The second step
// is best effort: a missing property or failed update becomes a warning.
func (s *LeaseService) Register(ctx context.Context, t *model.Tenant) ([]string, error) {
	ctx, span := startSpan(ctx, "lease.register")
	defer span.End()

	if err := s.tenants.Create(ctx, t); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("tenant.id", t.ID), attribute.String("property.id", t.PropertyID))

	if err := s.properties.SetRented(ctx, t.PropertyID, true); err != nil {
		s.log.Warnf("tenant %s: mark property %s rented: %v", t.ID, t.PropertyID, err)
		return []string{fmt.Sprintf("property %s could not be marked rented: %v", t.PropertyID, err)}, nil
	}
	return nil, nil
}

// Decline closes the lease as Declined, stamps the end date and texts the
// tenant.  Calling it again refreshes the end date.
func (s *LeaseService) Decline(ctx context.Context, tenantID string) (*model.Tenant, []string, error) {
	ctx, span := startSpan(ctx, "lease.decline")
	defer span.End()
	span.SetAttributes(attribute.String("tenant.id", tenantID))

	t, err := s.close(ctx, tenantID, model.LeaseDeclined)
	if err != nil {
		return nil, nil, err
	}
	return t, deliver(ctx, s.notifier, s.log, notify.LeaseDeclined(t)), nil
}

// End closes the lease as Ended.  No notification is sent.
func (s *LeaseService) End(ctx context.Context, tenantID string) (*model.Tenant, error) {
	ctx, span := startSpan(ctx, "lease.end")
	defer span.End()
	span.SetAttributes(attribute.String("tenant.id", tenantID))
	return s.close(ctx, tenantID, model.LeaseEnded)
}

func (s *LeaseService) close(ctx context.Context, tenantID string, status model.LeaseStatus) (*model.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, notFoundAs("tenant", err)
	}
	t.CloseLease(status, s.now())
	if err := s.tenants.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("save lease status: %w", err)
	}
	s.log.Infof("tenant %s lease %s", t.ID, status)
	return t, nil
}
