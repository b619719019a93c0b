package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/property-backoffice/internal/model"
)

const tenantColumns = "id, name, phone_number, email, address, property_id, lease_start, lease_end, lease_terms, " +
	"lease_status, payment_status, declined, created_at, updated_at"

// TenantRepo persists tenants in the `tenants` table.  The embedded lease
// is flattened into lease_* columns.
type TenantRepo struct {
	db *sql.DB
}

func NewTenantRepo(db *sql.DB) *TenantRepo { return &TenantRepo{db: db} }

func scanTenant(s rowScanner) (*model.Tenant, error) {
	var (
		t             model.Tenant
		start, end    sql.NullTime
		lease, paymnt string
	)
	err := s.Scan(&t.ID, &t.Name, &t.Phone, &t.Email, &t.Address, &t.PropertyID,
		&start, &end, &t.Lease.Terms, &lease, &paymnt, &t.Declined, &t.CreatedAt, &t.UpdatedAt)
	t.Lease.StartDate = timePtr(start)
	t.Lease.EndDate = timePtr(end)
	t.LeaseStatus = model.LeaseStatus(lease)
	t.PaymentStatus = model.PaymentStatus(paymnt)
	return &t, err
}

// Create inserts t.  A duplicate email yields ErrDuplicate.
func (r *TenantRepo) Create(ctx context.Context, t *model.Tenant) error {
	t.ID = uuid.NewString()
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	const q = "INSERT INTO tenants (" + tenantColumns + ") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)"
	_, err := r.db.ExecContext(ctx, q, t.ID, t.Name, t.Phone, t.Email, t.Address, t.PropertyID,
		nullTime(t.Lease.StartDate), nullTime(t.Lease.EndDate), t.Lease.Terms,
		string(t.LeaseStatus), string(t.PaymentStatus), t.Declined, t.CreatedAt, t.UpdatedAt)
	if isDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

func (r *TenantRepo) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	const q = "SELECT " + tenantColumns + " FROM tenants WHERE id = ?"
	return one(scanTenant(r.db.QueryRowContext(ctx, q, id)))
}

func tenantWhere(f TenantFilter) *where {
	w := &where{}
	if f.PropertyID != "" {
		w.add("property_id = ?", f.PropertyID)
	}
	if f.LeaseStatus != "" {
		w.add("lease_status = ?", string(f.LeaseStatus))
	}
	if f.Declined != nil {
		w.add("declined = ?", *f.Declined)
	}
	return w
}

func (r *TenantRepo) List(ctx context.Context, f TenantFilter, pg Page) ([]*model.Tenant, int64, error) {
	return list(ctx, r.db, "SELECT "+tenantColumns+" FROM tenants", "tenants", tenantWhere(f), pg, scanTenant)
}

func (r *TenantRepo) Count(ctx context.Context, f TenantFilter) (int64, error) {
	return count(ctx, r.db, "tenants", tenantWhere(f))
}

// Update overwrites the stored tenant with t (last write wins).
func (r *TenantRepo) Update(ctx context.Context, t *model.Tenant) error {
	t.UpdatedAt = now()
	const q = `UPDATE tenants
	           SET name = ?, phone_number = ?, email = ?, address = ?, property_id = ?,
	               lease_start = ?, lease_end = ?, lease_terms = ?,
	               lease_status = ?, payment_status = ?, declined = ?, updated_at = ?
	           WHERE id = ?`
	return affected(r.db.ExecContext(ctx, q, t.Name, t.Phone, t.Email, t.Address, t.PropertyID,
		nullTime(t.Lease.StartDate), nullTime(t.Lease.EndDate), t.Lease.Terms,
		string(t.LeaseStatus), string(t.PaymentStatus), t.Declined, t.UpdatedAt, t.ID))
}

func (r *TenantRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, "DELETE FROM tenants WHERE id = ?", id))
}
