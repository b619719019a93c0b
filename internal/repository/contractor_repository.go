package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/iliyamo/property-backoffice/internal/model"
)

const contractorColumns = "id, name, email, phone, skills, available, created_at, updated_at"

// ContractorRepo persists contractors.  Skills live in a JSON column so a
// single row carries the whole record.
type ContractorRepo struct {
	db *sql.DB
}

func NewContractorRepo(db *sql.DB) *ContractorRepo { return &ContractorRepo{db: db} }

func scanContractor(s rowScanner) (*model.Contractor, error) {
	var (
		c      model.Contractor
		skills []byte
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &skills, &c.Available, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Skills = []string{}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &c.Skills); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func encodeSkills(skills []string) ([]byte, error) {
	if skills == nil {
		skills = []string{}
	}
	return json.Marshal(skills)
}

// Create inserts c.  A duplicate email yields ErrDuplicate.
func (r *ContractorRepo) Create(ctx context.Context, c *model.Contractor) error {
	skills, err := encodeSkills(c.Skills)
	if err != nil {
		return err
	}
	c.ID = uuid.NewString()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	const q = "INSERT INTO contractors (" + contractorColumns + ") VALUES (?,?,?,?,?,?,?,?)"
	_, err = r.db.ExecContext(ctx, q, c.ID, c.Name, c.Email, c.Phone, skills, c.Available, c.CreatedAt, c.UpdatedAt)
	if isDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

func (r *ContractorRepo) GetByID(ctx context.Context, id string) (*model.Contractor, error) {
	const q = "SELECT " + contractorColumns + " FROM contractors WHERE id = ?"
	return one(scanContractor(r.db.QueryRowContext(ctx, q, id)))
}

func contractorWhere(f ContractorFilter) *where {
	w := &where{}
	if f.Available != nil {
		w.add("available = ?", *f.Available)
	}
	if f.Skill != "" {
		w.add("JSON_CONTAINS(skills, JSON_QUOTE(?))", f.Skill)
	}
	return w
}

func (r *ContractorRepo) List(ctx context.Context, f ContractorFilter, pg Page) ([]*model.Contractor, int64, error) {
	return list(ctx, r.db, "SELECT "+contractorColumns+" FROM contractors", "contractors", contractorWhere(f), pg, scanContractor)
}

func (r *ContractorRepo) Count(ctx context.Context, f ContractorFilter) (int64, error) {
	return count(ctx, r.db, "contractors", contractorWhere(f))
}

func (r *ContractorRepo) Update(ctx context.Context, c *model.Contractor) error {
	skills, err := encodeSkills(c.Skills)
	if err != nil {
		return err
	}
	c.UpdatedAt = now()
	const q = `UPDATE contractors
	           SET name = ?, email = ?, phone = ?, skills = ?, available = ?, updated_at = ?
	           WHERE id = ?`
	return affected(r.db.ExecContext(ctx, q, c.Name, c.Email, c.Phone, skills, c.Available, c.UpdatedAt, c.ID))
}

func (r *ContractorRepo) Delete(ctx context.Context, id string) error {
	return affected(r.db.ExecContext(ctx, "DELETE FROM contractors WHERE id = ?", id))
}
