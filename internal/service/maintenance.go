package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/notify"
	"github.com/iliyamo/property-backoffice/internal/repository"
)

// MaintenanceService assigns contractors to maintenance requests.
type MaintenanceService struct {
	requests    repository.MaintenanceRepository
	contractors repository.ContractorRepository
	tenants     repository.TenantRepository
	notifier    notify.Notifier
	log         *log.Logger
	now         clock
}

func NewMaintenanceService(st *repository.Store, n notify.Notifier, l *log.Logger) *MaintenanceService {
	return &MaintenanceService{
		requests:    st.Maintenance,
		contractors: st.Contractors,
		tenants:     st.Tenants,
		notifier:    n,
		log:         l,
		now:         utcNow,
	}
}

// AssignContractor links contractorID to the request, stamps the
// assignment date (at, or now when nil) and moves the request into
// progress.  The request, the contractor and the request's tenant must all
// exist; a missing one yields an error wrapping repository.ErrNotFound and
// nothing is written.  Once the update is persisted the contractor is sent
// one SMS and one email; failures there come back as warnings.
func (s *MaintenanceService) AssignContractor(ctx context.Context, requestID, contractorID string, at *time.Time) (*model.MaintenanceRequest, []string, error) {
	ctx, span := startSpan(ctx, "maintenance.assign_contractor")
	defer span.End()
	span.SetAttributes(attribute.String("maintenance.id", requestID), attribute.String("contractor.id", contractorID))

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, notFoundAs("maintenance request", err)
	}
	contractor, err := s.contractors.GetByID(ctx, contractorID)
	if err != nil {
		return nil, nil, notFoundAs("contractor", err)
	}
	if _, err := s.tenants.GetByID(ctx, req.TenantID); err != nil {
		return nil, nil, notFoundAs("tenant", err)
	}

	when := s.now()
	if at != nil && !at.IsZero() {
		when = at.UTC()
	}
	req.Assign(contractor.ID, when)
	if err := s.requests.Update(ctx, req); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, fmt.Errorf("save assignment: %w", err)
	}
	s.log.Infof("maintenance %s assigned to contractor %s", req.ID, contractor.ID)

	warnings := deliver(ctx, s.notifier, s.log, notify.ContractorAssigned(contractor, req)...)
	span.SetAttributes(attribute.Int("notify.warnings", len(warnings)))
	return req, warnings, nil
}

// notFoundAs names the missing entity in a not-found error and wraps any
// other failure with the same label.
func notFoundAs(entity string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %w", entity, repository.ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", entity, err)
}
