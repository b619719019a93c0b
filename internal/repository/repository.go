package repository

import (
	"context"
	"time"

	"github.com/iliyamo/property-backoffice/internal/model"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page selects a window of a listing.  Page is 1-based.
type Page struct {
	Page  int
	Limit int
}

// Normalize clamps the page to >= 1 and the limit to [1, MaxLimit],
// substituting DefaultLimit for a non-positive limit.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the number of rows skipped before the page.
func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// PropertyFilter narrows property listings.  Zero values match all.
type PropertyFilter struct {
	Type   model.PropertyType
	Rented *bool
}

// TenantFilter narrows tenant listings.
type TenantFilter struct {
	PropertyID  string
	LeaseStatus model.LeaseStatus
	Declined    *bool
}

// ContractorFilter narrows contractor listings.  Skill matches one
// element of the skills list exactly.
type ContractorFilter struct {
	Available *bool
	Skill     string
}

// MaintenanceFilter narrows maintenance request listings.
type MaintenanceFilter struct {
	Status       model.MaintenanceStatus
	Priority     model.Priority
	TenantID     string
	PropertyID   string
	ContractorID string
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role   model.Role
	Status model.UserStatus
}

// PropertyRepository persists properties.  Create assigns ID and
// timestamps; Update and Delete return ErrNotFound for unknown ids.
type PropertyRepository interface {
	Create(ctx context.Context, p *model.Property) error
	GetByID(ctx context.Context, id string) (*model.Property, error)
	List(ctx context.Context, f PropertyFilter, pg Page) ([]*model.Property, int64, error)
	Count(ctx context.Context, f PropertyFilter) (int64, error)
	Update(ctx context.Context, p *model.Property) error
	SetRented(ctx context.Context, id string, rented bool) error
	Delete(ctx context.Context, id string) error
}

// TenantRepository persists tenants.  Email is unique.
type TenantRepository interface {
	Create(ctx context.Context, t *model.Tenant) error
	GetByID(ctx context.Context, id string) (*model.Tenant, error)
	List(ctx context.Context, f TenantFilter, pg Page) ([]*model.Tenant, int64, error)
	Count(ctx context.Context, f TenantFilter) (int64, error)
	Update(ctx context.Context, t *model.Tenant) error
	Delete(ctx context.Context, id string) error
}

// ContractorRepository persists contractors.  Email is unique.
type ContractorRepository interface {
	Create(ctx context.Context, c *model.Contractor) error
	GetByID(ctx context.Context, id string) (*model.Contractor, error)
	List(ctx context.Context, f ContractorFilter, pg Page) ([]*model.Contractor, int64, error)
	Count(ctx context.Context, f ContractorFilter) (int64, error)
	Update(ctx context.Context, c *model.Contractor) error
	Delete(ctx context.Context, id string) error
}

// MaintenanceRepository persists maintenance requests.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *model.MaintenanceRequest) error
	GetByID(ctx context.Context, id string) (*model.MaintenanceRequest, error)
	List(ctx context.Context, f MaintenanceFilter, pg Page) ([]*model.MaintenanceRequest, int64, error)
	Count(ctx context.Context, f MaintenanceFilter) (int64, error)
	Update(ctx context.Context, m *model.MaintenanceRequest) error
	Delete(ctx context.Context, id string) error
}

// UserRepository persists back-office accounts.  Email is unique and
// stored lower-cased.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, f UserFilter, pg Page) ([]*model.User, int64, error)
	Update(ctx context.Context, u *model.User) error
	SetToken(ctx context.Context, id string, token *string) error
	Delete(ctx context.Context, id string) error
}

// TokenRepository persists refresh token hashes.
type TokenRepository interface {
	StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error
	// ValidateRefresh returns the owner of a non-revoked, non-expired
	// token, or ErrNotFound.
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

// Store bundles one repository per entity so that services and handlers
// can be constructed against any backend.
type Store struct {
	Properties  PropertyRepository
	Tenants     TenantRepository
	Contractors ContractorRepository
	Maintenance MaintenanceRepository
	Users       UserRepository
	Tokens      TokenRepository

	// Close releases the backend's connections.  May be nil.
	Close func(ctx context.Context) error
}
