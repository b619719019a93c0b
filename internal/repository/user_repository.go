package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/property-backoffice/internal/model"
)

const userColumns = "id, name, email, password_hash, role, status, allowed_urls, token, created_at, updated_at"

// UserRepo persists back-office accounts in the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

func scanUser(s rowScanner) (*model.User, error) {
	var (
		u            model.User
		role, status string
		urls         []byte
		token        sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &status, &urls, &token,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	u.Status = model.UserStatus(status)
	u.AllowedURLs = []string{}
	if len(urls) > 0 {
		if err := json.Unmarshal(urls, &u.AllowedURLs); err != nil {
			return nil, err
		}
	}
	if token.Valid {
		u.Token = &token.String
	}
	return &u, nil
}

func encodeURLs(urls []string) ([]byte, error) {
	if urls == nil {
		urls = []string{}
	}
	return json.Marshal(urls)
}

func nullToken(tok *string) sql.NullString {
	if tok == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *tok, Valid: true}
}

// Create inserts u with a normalized email.  The password must already be
// hashed into u.PasswordHash.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	urls, err := encodeURLs(u.AllowedURLs)
	if err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.ID = uuid.NewString()
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	const q = "INSERT INTO users (" + userColumns + ") VALUES (?,?,?,?,?,?,?,?,?,?)"
	_, err = r.DB.ExecContext(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role), string(u.Status),
		urls, nullToken(u.Token), u.CreatedAt, u.UpdatedAt)
	if isDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = "SELECT " + userColumns + " FROM users WHERE email = ? LIMIT 1"
	return one(scanUser(r.DB.QueryRowContext(ctx, q, email)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	const q = "SELECT " + userColumns + " FROM users WHERE id = ? LIMIT 1"
	return one(scanUser(r.DB.QueryRowContext(ctx, q, id)))
}

func userWhere(f UserFilter) *where {
	w := &where{}
	if f.Role != "" {
		w.add("role = ?", string(f.Role))
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	return w
}

func (r *UserRepo) List(ctx context.Context, f UserFilter, pg Page) ([]*model.User, int64, error) {
	return list(ctx, r.DB, "SELECT "+userColumns+" FROM users", "users", userWhere(f), pg, scanUser)
}

// Update writes the profile columns and the password hash.  The session
// token is only changed through SetToken.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	urls, err := encodeURLs(u.AllowedURLs)
	if err != nil {
		return err
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.UpdatedAt = now()
	const q = `UPDATE users
	           SET name = ?, email = ?, password_hash = ?, role = ?, status = ?, allowed_urls = ?, updated_at = ?
	           WHERE id = ?`
	return affected(r.DB.ExecContext(ctx, q, u.Name, u.Email, u.PasswordHash, string(u.Role), string(u.Status),
		urls, u.UpdatedAt, u.ID))
}

// SetToken records (or clears, when token is nil) the current access token id.
func (r *UserRepo) SetToken(ctx context.Context, id string, token *string) error {
	return affected(r.DB.ExecContext(ctx, "UPDATE users SET token = ?, updated_at = ? WHERE id = ?",
		nullToken(token), now(), id))
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return affected(r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id))
}
