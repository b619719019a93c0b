package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/property-backoffice/internal/model"
)

const maintenanceColumns = "id, tenant_id, property_id, description, request_date, status, priority, " +
	"contractor_id, assignment_date, created_at, updated_at"

// MaintenanceRepo persists rows of `maintenance_requests`.  contractor_id
// and assignment_date are NULL until the request is assigned.
type MaintenanceRepo struct {
	db *sql.DB
}

func NewMaintenanceRepo(db *sql.DB) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

func scanMaintenance(s rowScanner) (*model.MaintenanceRequest, error) {
	var (
		m                model.MaintenanceRequest
		status, priority string
		contractorID     sql.NullString
		assignedAt       sql.NullTime
	)
	err := s.Scan(&m.ID, &m.TenantID, &m.PropertyID, &m.Description, &m.RequestDate, &status, &priority,
		&contractorID, &assignedAt, &m.CreatedAt, &m.UpdatedAt)
	m.Status = model.MaintenanceStatus(status)
	m.Priority = model.Priority(priority)
	m.ContractorID = contractorID.String
	m.AssignmentDate = timePtr(assignedAt)
	return &m, err
}

func (r *MaintenanceRepo) Create(ctx context.Context, m *model.MaintenanceRequest) error {
	m.ID = uuid.NewString()
	m.CreatedAt = now()
	m.UpdatedAt = m.CreatedAt
	if m.RequestDate.IsZero() {
		m.RequestDate = m.CreatedAt
	}
	const q = "INSERT INTO maintenance_requests (" + maintenanceColumns + ") VALUES (?,?,?,?,?,?,?,?,?,?,?)"
	_, err := r.db.ExecContext(ctx, q, m.ID, m.TenantID, m.PropertyID, m.Description, m.RequestDate,
		string(m.Status), string(m.Priority), nullString(m.ContractorID), nullTime(m.AssignmentDate),
		m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *MaintenanceRepo) GetByID(ctx context.Context, id string) (*model.MaintenanceRequest, error) {
	const q = "SELECT " + maintenanceColumns + " FROM maintenance_requests WHERE id = ?"
	return one(scanMaintenance(r.db.QueryRowContext(ctx, q, id)))
}

func maintenanceWhere(f MaintenanceFilter) *where {
	w := &where{}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	if f.Priority != "" {
		w.add("priority = ?", string(f.Priority))
	}
	if f.TenantID != "" {
		w.add("tenant_id = ?", f.TenantID)
	}
	if f.PropertyID != "" {
		w.add("property_id = ?", f.PropertyID)
	}
	if f.ContractorID != "" {
		w.add("contractor_id = ?", f.ContractorID)
	}
	return w
}

func (r *MaintenanceRepo) List(ctx context.Context, f MaintenanceFilter, pg Page) ([]*model.MaintenanceRequest, int64, error) {
	return list(ctx, r.db, "SELECT "+maintenanceColumns+" FROM maintenance_requests", "maintenance_requests",
		maintenanceWhere(f), pg, scanMaintenance)
}

func (r *MaintenanceRepo) Count(ctx context.Context, f MaintenanceFilter) (int64, error) {
	return count(ctx, r.db, "maintenance_requests", maintenanceWhere(f))
}

// Update writes every column, including the assignment pair.  Callers that
// must not touch the assignment load the record first and merge into it.
func (r *MaintenanceRepo) Update(ctx context.Context, m *model.MaintenanceRequest) error {
	m.UpdatedAt = now()
	const q = `UPDATE maintenance_requests
	           SET tenant_id = ?, property_id = ?, description = ?, request_date = ?, status = ?, priority = ?,
	               contractor_id = ?, assignment_date = ?, updated_at = ?
	           WHERE id = ?`
	return affected(r.db.ExecContext(ctx, q, m.TenantID, m.PropertyID, m.Description, m.RequestDate,
		string(m.Status), string(m.Priority), nullString(m.ContractorID), nullTime(m.AssignmentDate),
		m.UpdatedAt, m.ID))
}

func (r *MaintenanceRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, "DELETE FROM maintenance_requests WHERE id = ?", id))
}
