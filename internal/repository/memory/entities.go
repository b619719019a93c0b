package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/repository"
)

// PropertyRepo implements repository.PropertyRepository.
type PropertyRepo struct{ t *table[model.Property] }

func NewPropertyRepo() *PropertyRepo {
	return &PropertyRepo{t: newTable(func(p *model.Property) *model.Property { c := *p; return &c })}
}

func (r *PropertyRepo) Create(_ context.Context, p *model.Property) error {
	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	return r.t.insert(p.ID, p, nil)
}

func (r *PropertyRepo) GetByID(_ context.Context, id string) (*model.Property, error) {
	return r.t.get(id)
}

func propertyMatch(f repository.PropertyFilter) func(*model.Property) bool {
	return func(p *model.Property) bool {
		return (f.Type == "" || p.Type == f.Type) && (f.Rented == nil || p.IsRented == *f.Rented)
	}
}

func (r *PropertyRepo) List(_ context.Context, f repository.PropertyFilter, pg repository.Page) ([]*model.Property, int64, error) {
	items, total := r.t.list(propertyMatch(f), pg)
	return items, total, nil
}

func (r *PropertyRepo) Count(_ context.Context, f repository.PropertyFilter) (int64, error) {
	return r.t.count(propertyMatch(f)), nil
}

func (r *PropertyRepo) Update(_ context.Context, p *model.Property) error {
	stored, err := r.t.get(p.ID)
	if err != nil {
		return err
	}
	p.CreatedAt = stored.CreatedAt
	p.UpdatedAt = now()
	return r.t.replace(p.ID, p, nil)
}

func (r *PropertyRepo) SetRented(_ context.Context, id string, rented bool) error {
	return r.t.mutate(id, func(p *model.Property) {
		p.IsRented = rented
		p.UpdatedAt = now()
	})
}

func (r *PropertyRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

// TenantRepo implements repository.TenantRepository.
type TenantRepo struct{ t *table[model.Tenant] }

func cloneTenant(t *model.Tenant) *model.Tenant {
	c := *t
	c.Lease.StartDate = copyTime(t.Lease.StartDate)
	c.Lease.EndDate = copyTime(t.Lease.EndDate)
	return &c
}

func NewTenantRepo() *TenantRepo { return &TenantRepo{t: newTable(cloneTenant)} }

func tenantEmail(email string) func(*model.Tenant) bool {
	return func(t *model.Tenant) bool { return strings.EqualFold(t.Email, email) }
}

func (r *TenantRepo) Create(_ context.Context, t *model.Tenant) error {
	t.ID = newID()
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	return r.t.insert(t.ID, t, tenantEmail(t.Email))
}

func (r *TenantRepo) GetByID(_ context.Context, id string) (*model.Tenant, error) { return r.t.get(id) }

func tenantMatch(f repository.TenantFilter) func(*model.Tenant) bool {
	return func(t *model.Tenant) bool {
		return (f.PropertyID == "" || t.PropertyID == f.PropertyID) &&
			(f.LeaseStatus == "" || t.LeaseStatus == f.LeaseStatus) &&
			(f.Declined == nil || t.Declined == *f.Declined)
	}
}

func (r *TenantRepo) List(_ context.Context, f repository.TenantFilter, pg repository.Page) ([]*model.Tenant, int64, error) {
	items, total := r.t.list(tenantMatch(f), pg)
	return items, total, nil
}

func (r *TenantRepo) Count(_ context.Context, f repository.TenantFilter) (int64, error) {
	return r.t.count(tenantMatch(f)), nil
}

func (r *TenantRepo) Update(_ context.Context, t *model.Tenant) error {
	stored, err := r.t.get(t.ID)
	if err != nil {
		return err
	}
	t.CreatedAt = stored.CreatedAt
	t.UpdatedAt = now()
	return r.t.replace(t.ID, t, tenantEmail(t.Email))
}

func (r *TenantRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

// ContractorRepo implements repository.ContractorRepository.
type ContractorRepo struct{ t *table[model.Contractor] }

func cloneContractor(c *model.Contractor) *model.Contractor {
	out := *c
	out.Skills = append([]string{}, c.Skills...)
	return &out
}

func NewContractorRepo() *ContractorRepo { return &ContractorRepo{t: newTable(cloneContractor)} }

func contractorEmail(email string) func(*model.Contractor) bool {
	return func(c *model.Contractor) bool { return strings.EqualFold(c.Email, email) }
}

func (r *ContractorRepo) Create(_ context.Context, c *model.Contractor) error {
	c.ID = newID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	return r.t.insert(c.ID, c, contractorEmail(c.Email))
}

func (r *ContractorRepo) GetByID(_ context.Context, id string) (*model.Contractor, error) {
	return r.t.get(id)
}

func contractorMatch(f repository.ContractorFilter) func(*model.Contractor) bool {
	return func(c *model.Contractor) bool {
		return (f.Available == nil || c.Available == *f.Available) &&
			(f.Skill == "" || slices.Contains(c.Skills, f.Skill))
	}
}

func (r *ContractorRepo) List(_ context.Context, f repository.ContractorFilter, pg repository.Page) ([]*model.Contractor, int64, error) {
	items, total := r.t.list(contractorMatch(f), pg)
	return items, total, nil
}

func (r *ContractorRepo) Count(_ context.Context, f repository.ContractorFilter) (int64, error) {
	return r.t.count(contractorMatch(f)), nil
}

func (r *ContractorRepo) Update(_ context.Context, c *model.Contractor) error {
	stored, err := r.t.get(c.ID)
	if err != nil {
		return err
	}
	c.CreatedAt = stored.CreatedAt
	c.UpdatedAt = now()
	return r.t.replace(c.ID, c, contractorEmail(c.Email))
}

func (r *ContractorRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

// MaintenanceRepo implements repository.MaintenanceRepository.
type MaintenanceRepo struct{ t *table[model.MaintenanceRequest] }

func cloneMaintenance(m *model.MaintenanceRequest) *model.MaintenanceRequest {
	c := *m
	c.AssignmentDate = copyTime(m.AssignmentDate)
	return &c
}

func NewMaintenanceRepo() *MaintenanceRepo { return &MaintenanceRepo{t: newTable(cloneMaintenance)} }

func (r *MaintenanceRepo) Create(_ context.Context, m *model.MaintenanceRequest) error {
	m.ID = newID()
	m.CreatedAt = now()
	m.UpdatedAt = m.CreatedAt
	if m.RequestDate.IsZero() {
		m.RequestDate = m.CreatedAt
	}
	return r.t.insert(m.ID, m, nil)
}

func (r *MaintenanceRepo) GetByID(_ context.Context, id string) (*model.MaintenanceRequest, error) {
	return r.t.get(id)
}

func maintenanceMatch(f repository.MaintenanceFilter) func(*model.MaintenanceRequest) bool {
	return func(m *model.MaintenanceRequest) bool {
		return (f.Status == "" || m.Status == f.Status) &&
			(f.Priority == "" || m.Priority == f.Priority) &&
			(f.TenantID == "" || m.TenantID == f.TenantID) &&
			(f.PropertyID == "" || m.PropertyID == f.PropertyID) &&
			(f.ContractorID == "" || m.ContractorID == f.ContractorID)
	}
}

func (r *MaintenanceRepo) List(_ context.Context, f repository.MaintenanceFilter, pg repository.Page) ([]*model.MaintenanceRequest, int64, error) {
	items, total := r.t.list(maintenanceMatch(f), pg)
	return items, total, nil
}

func (r *MaintenanceRepo) Count(_ context.Context, f repository.MaintenanceFilter) (int64, error) {
	return r.t.count(maintenanceMatch(f)), nil
}

func (r *MaintenanceRepo) Update(_ context.Context, m *model.MaintenanceRequest) error {
	stored, err := r.t.get(m.ID)
	if err != nil {
		return err
	}
	m.CreatedAt = stored.CreatedAt
	m.UpdatedAt = now()
	return r.t.replace(m.ID, m, nil)
}

func (r *MaintenanceRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

// UserRepo implements repository.UserRepository.
type UserRepo struct{ t *table[model.User] }

func cloneUser(u *model.User) *model.User {
	c := *u
	c.AllowedURLs = append([]string{}, u.AllowedURLs...)
	if u.Token != nil {
		tok := *u.Token
		c.Token = &tok
	}
	return &c
}

func NewUserRepo() *UserRepo { return &UserRepo{t: newTable(cloneUser)} }

func userEmail(email string) func(*model.User) bool {
	return func(u *model.User) bool { return u.Email == email }
}

func (r *UserRepo) Create(_ context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.ID = newID()
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	return r.t.insert(u.ID, u, userEmail(u.Email))
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*model.User, error) { return r.t.get(id) }

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	found := r.t.find(userEmail(strings.ToLower(strings.TrimSpace(email))))
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return found[0], nil
}

func (r *UserRepo) List(_ context.Context, f repository.UserFilter, pg repository.Page) ([]*model.User, int64, error) {
	items, total := r.t.list(func(u *model.User) bool {
		return (f.Role == "" || u.Role == f.Role) && (f.Status == "" || u.Status == f.Status)
	}, pg)
	return items, total, nil
}

// Update keeps the stored session token; use SetToken to change it.
func (r *UserRepo) Update(_ context.Context, u *model.User) error {
	stored, err := r.t.get(u.ID)
	if err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Token = stored.Token
	u.CreatedAt = stored.CreatedAt
	u.UpdatedAt = now()
	return r.t.replace(u.ID, u, userEmail(u.Email))
}

func (r *UserRepo) SetToken(_ context.Context, id string, token *string) error {
	return r.t.mutate(id, func(u *model.User) {
		if token == nil {
			u.Token = nil
		} else {
			tok := *token
			u.Token = &tok
		}
		u.UpdatedAt = now()
	})
}

func (r *UserRepo) Delete(_ context.Context, id string) error { return r.t.remove(id) }

// TokenRepo implements repository.TokenRepository.
type TokenRepo struct {
	mu   sync.Mutex
	rows map[string]*model.RefreshToken
}

func NewTokenRepo() *TokenRepo { return &TokenRepo{rows: map[string]*model.RefreshToken{}} }

func (r *TokenRepo) StoreRefresh(_ context.Context, userID, tokenHash string, exp time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[tokenHash]; ok {
		return repository.ErrDuplicate
	}
	r.rows[tokenHash] = &model.RefreshToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: exp.UTC(), CreatedAt: now()}
	return nil
}

func (r *TokenRepo) ValidateRefresh(_ context.Context, tokenHash string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.rows[tokenHash]
	if !ok || rt.RevokedAt != nil || now().After(rt.ExpiresAt) {
		return "", repository.ErrNotFound
	}
	return rt.UserID, nil
}

func (r *TokenRepo) RevokeByHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rt, ok := r.rows[tokenHash]; ok && rt.RevokedAt == nil {
		at := now()
		rt.RevokedAt = &at
	}
	return nil
}

func (r *TokenRepo) RevokeAllForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	at := now()
	for _, rt := range r.rows {
		if rt.UserID == userID && rt.RevokedAt == nil {
			rt.RevokedAt = &at
		}
	}
	return nil
}
