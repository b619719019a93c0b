package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/repository"
)

// Stats is the body of /api/stats and /api/dashboard.
type Stats struct {
	TotalProperties      int64 `json:"totalProperties"`
	RentedProperties     int64 `json:"rentedProperties"`
	AvailableProperties  int64 `json:"availableProperties"`
	Tenants              int64 `json:"tenants"`
	TotalMaintenance     int64 `json:"totalMaintenance"`
	PendingMaintenance   int64 `json:"pendingMaintenance"`
	CompletedMaintenance int64 `json:"completedMaintenance"`
}

// StatsHandler serves the aggregate counts.
type StatsHandler struct {
	Store *repository.Store
}

func NewStatsHandler(st *repository.Store) *StatsHandler { return &StatsHandler{Store: st} }

// Collect runs the count queries one after another.
func (h *StatsHandler) Collect(ctx context.Context) (Stats, error) {
	var s Stats
	counts := []struct {
		dst *int64
		fn  func() (int64, error)
	}{
		{&s.TotalProperties, func() (int64, error) { return h.Store.Properties.Count(ctx, repository.PropertyFilter{}) }},
		{&s.RentedProperties, func() (int64, error) {
			return h.Store.Properties.Count(ctx, repository.PropertyFilter{Rented: boolPtr(true)})
		}},
		{&s.Tenants, func() (int64, error) { return h.Store.Tenants.Count(ctx, repository.TenantFilter{}) }},
		{&s.TotalMaintenance, func() (int64, error) {
			return h.Store.Maintenance.Count(ctx, repository.MaintenanceFilter{})
		}},
		{&s.PendingMaintenance, func() (int64, error) {
			return h.Store.Maintenance.Count(ctx, repository.MaintenanceFilter{Status: model.MaintenancePending})
		}},
		{&s.CompletedMaintenance, func() (int64, error) {
			return h.Store.Maintenance.Count(ctx, repository.MaintenanceFilter{Status: model.MaintenanceCompleted})
		}},
	}
	for _, cnt := range counts {
		n, err := cnt.fn()
		if err != nil {
			return Stats{}, err
		}
		*cnt.dst = n
	}
	s.AvailableProperties = s.TotalProperties - s.RentedProperties
	return s, nil
}

// Counts handles GET /api/stats and GET /api/dashboard.
func (h *StatsHandler) Counts(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	s, err := h.Collect(ctx)
	if err != nil {
		return respondError(c, err, "stats")
	}
	return c.JSON(http.StatusOK, s)
}
