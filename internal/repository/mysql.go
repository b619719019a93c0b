package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// NewMySQLStore wires the MySQL repositories over a single pool.
func NewMySQLStore(db *sql.DB) *Store {
	return &Store{
		Properties:  NewPropertyRepo(db),
		Tenants:     NewTenantRepo(db),
		Contractors: NewContractorRepo(db),
		Maintenance: NewMaintenanceRepo(db),
		Users:       NewUserRepo(db),
		Tokens:      NewTokenRepo(db),
		Close:       func(context.Context) error { return db.Close() },
	}
}

// isDuplicate reports whether err is a unique-key violation.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// now returns the timestamp written to created_at / updated_at.  MySQL
// DATETIME(6) keeps microseconds, so truncate to match what is read back.
func now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

type rowScanner interface {
	Scan(dest ...any) error
}

// where accumulates AND-ed predicates for listing queries.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, arg any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, arg)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// list runs the COUNT and the paged SELECT for one listing.  sel must end
// with the table name; the ORDER/LIMIT suffix is appended here.
func list[T any](ctx context.Context, db *sql.DB, sel, table string, w *where, pg Page, scan func(rowScanner) (*T, error)) ([]*T, int64, error) {
	total, err := count(ctx, db, table, w)
	if err != nil {
		return nil, 0, err
	}
	pg = pg.Normalize()
	q := sel + w.String() + " ORDER BY created_at, id LIMIT ? OFFSET ?"
	args := append(append([]any{}, w.args...), pg.Limit, pg.Offset())
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]*T, 0, pg.Limit)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func count(ctx context.Context, db *sql.DB, table string, w *where) (int64, error) {
	var n int64
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+w.String(), w.args...).Scan(&n)
	return n, err
}

// affected converts a zero-row UPDATE/DELETE into ErrNotFound.
func affected(res sql.Result, err error) error {
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// one maps sql.ErrNoRows from a single-row scan into ErrNotFound.
func one[T any](v *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
