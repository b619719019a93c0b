package handler

import (
	"context"
	"errors"

	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/repository"
)

// Ref is the id and display name of a referenced entity.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TenantView is a tenant as returned by the read routes.
type TenantView struct {
	*model.Tenant
	Property *Ref `json:"property,omitempty"`
}

// MaintenanceView is a maintenance request as returned by the read routes.
type MaintenanceView struct {
	*model.MaintenanceRequest
	Tenant     *Ref `json:"tenant,omitempty"`
	Property   *Ref `json:"property,omitempty"`
	Contractor *Ref `json:"contractor,omitempty"`
}

// Refs resolves the names behind the ids stored on tenants and
// maintenance requests.  Deletes do not cascade, so an id may point at
// nothing; such references are left out of the response.
type Refs struct {
	Properties  repository.PropertyRepository
	Tenants     repository.TenantRepository
	Contractors repository.ContractorRepository
}

func NewRefs(st *repository.Store) *Refs {
	return &Refs{Properties: st.Properties, Tenants: st.Tenants, Contractors: st.Contractors}
}

// resolver memoizes lookups for the duration of one response.
type resolver struct {
	refs *Refs
	seen map[string]*Ref // keyed by kind + id
}

func (r *Refs) resolver() *resolver {
	return &resolver{refs: r, seen: map[string]*Ref{}}
}

func (rs *resolver) lookup(ctx context.Context, kind, id string, name func(context.Context, string) (string, error)) (*Ref, error) {
	if rs.refs == nil || id == "" {
		return nil, nil
	}
	key := kind + ":" + id
	if ref, ok := rs.seen[key]; ok {
		return ref, nil
	}
	n, err := name(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		rs.seen[key] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	ref := &Ref{ID: id, Name: n}
	rs.seen[key] = ref
	return ref, nil
}

func (rs *resolver) property(ctx context.Context, id string) (*Ref, error) {
	return rs.lookup(ctx, "property", id, func(ctx context.Context, id string) (string, error) {
		p, err := rs.refs.Properties.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return p.Name, nil
	})
}

func (rs *resolver) tenant(ctx context.Context, id string) (*Ref, error) {
	return rs.lookup(ctx, "tenant", id, func(ctx context.Context, id string) (string, error) {
		t, err := rs.refs.Tenants.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return t.Name, nil
	})
}

func (rs *resolver) contractor(ctx context.Context, id string) (*Ref, error) {
	return rs.lookup(ctx, "contractor", id, func(ctx context.Context, id string) (string, error) {
		c, err := rs.refs.Contractors.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return c.Name, nil
	})
}

// tenantViews attaches property summaries.  A nil Refs returns the
// tenants without them.
func (r *Refs) tenantViews(ctx context.Context, ts []*model.Tenant) ([]TenantView, error) {
	rs := r.resolver()
	out := make([]TenantView, 0, len(ts))
	for _, t := range ts {
		p, err := rs.property(ctx, t.PropertyID)
		if err != nil {
			return nil, err
		}
		out = append(out, TenantView{Tenant: t, Property: p})
	}
	return out, nil
}

func (r *Refs) maintenanceViews(ctx context.Context, ms []*model.MaintenanceRequest) ([]MaintenanceView, error) {
	rs := r.resolver()
	out := make([]MaintenanceView, 0, len(ms))
	for _, m := range ms {
		v := MaintenanceView{MaintenanceRequest: m}
		var err error
		if v.Tenant, err = rs.tenant(ctx, m.TenantID); err != nil {
			return nil, err
		}
		if v.Property, err = rs.property(ctx, m.PropertyID); err != nil {
			return nil, err
		}
		if v.Contractor, err = rs.contractor(ctx, m.ContractorID); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
