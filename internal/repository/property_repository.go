package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/iliyamo/property-backoffice/internal/model"
)

const propertyColumns = "id, name, description, location, size, image_url, type, rent_amount, is_rented, created_at, updated_at"

// PropertyRepo encapsulates the queries against the `properties` table.
type PropertyRepo struct {
	db *sql.DB
}

// NewPropertyRepo constructs a PropertyRepo with the provided DB handle.
func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

func scanProperty(s rowScanner) (*model.Property, error) {
	var p model.Property
	var typ string
	err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Location, &p.Size, &p.ImageURL,
		&typ, &p.RentAmount, &p.IsRented, &p.CreatedAt, &p.UpdatedAt)
	p.Type = model.PropertyType(typ)
	return &p, err
}

// Create inserts p, assigning a new UUID and both timestamps.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	p.ID = uuid.NewString()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	const q = "INSERT INTO properties (" + propertyColumns + ") VALUES (?,?,?,?,?,?,?,?,?,?,?)"
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Location, p.Size, p.ImageURL,
		string(p.Type), p.RentAmount, p.IsRented, p.CreatedAt, p.UpdatedAt)
	return err
}

// GetByID returns ErrNotFound when no row matches.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	const q = "SELECT " + propertyColumns + " FROM properties WHERE id = ?"
	return one(scanProperty(r.db.QueryRowContext(ctx, q, id)))
}

func propertyWhere(f PropertyFilter) *where {
	w := &where{}
	if f.Type != "" {
		w.add("type = ?", string(f.Type))
	}
	if f.Rented != nil {
		w.add("is_rented = ?", *f.Rented)
	}
	return w
}

// List returns one page of matching properties plus the total match count.
func (r *PropertyRepo) List(ctx context.Context, f PropertyFilter, pg Page) ([]*model.Property, int64, error) {
	return list(ctx, r.db, "SELECT "+propertyColumns+" FROM properties", "properties", propertyWhere(f), pg, scanProperty)
}

// Count returns the number of matching properties.
func (r *PropertyRepo) Count(ctx context.Context, f PropertyFilter) (int64, error) {
	return count(ctx, r.db, "properties", propertyWhere(f))
}

// Update overwrites every mutable column of p and refreshes UpdatedAt.
func (r *PropertyRepo) Update(ctx context.Context, p *model.Property) error {
	p.UpdatedAt = now()
	const q = `UPDATE properties
	           SET name = ?, description = ?, location = ?, size = ?, image_url = ?, type = ?,
	               rent_amount = ?, is_rented = ?, updated_at = ?
	           WHERE id = ?`
	return affected(r.db.ExecContext(ctx, q, p.Name, p.Description, p.Location, p.Size, p.ImageURL,
		string(p.Type), p.RentAmount, p.IsRented, p.UpdatedAt, p.ID))
}

// SetRented flips only the occupancy flag.
func (r *PropertyRepo) SetRented(ctx context.Context, id string, rented bool) error {
	const q = "UPDATE properties SET is_rented = ?, updated_at = ? WHERE id = ?"
	return affected(r.db.ExecContext(ctx, q, rented, now(), id))
}

// Delete removes the row.  Tenants and requests referencing it are left as is.
func (r *PropertyRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id))
}
