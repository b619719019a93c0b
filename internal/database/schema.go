package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the CREATE TABLE statements for the MySQL store in
// dependency-free order.  Ids are UUID strings; there are no foreign keys
// because entities only reference each other weakly.
var schema = []struct {
	table string
	ddl   string
}{
	{"properties", `CREATE TABLE IF NOT EXISTS properties (
  id           CHAR(36)      NOT NULL PRIMARY KEY,
  name         VARCHAR(20)   NOT NULL,
  description  VARCHAR(200)  NOT NULL DEFAULT '',
  location     VARCHAR(200)  NOT NULL DEFAULT '',
  size         VARCHAR(32)   NOT NULL,
  image_url    VARCHAR(1024) NOT NULL DEFAULT '',
  type         VARCHAR(16)   NOT NULL,
  rent_amount  DOUBLE        NOT NULL DEFAULT 0,
  is_rented    BOOLEAN       NOT NULL DEFAULT FALSE,
  created_at   DATETIME(6)   NOT NULL,
  updated_at   DATETIME(6)   NOT NULL,
  KEY idx_properties_type (type),
  KEY idx_properties_rented (is_rented)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"tenants", `CREATE TABLE IF NOT EXISTS tenants (
  id              CHAR(36)     NOT NULL PRIMARY KEY,
  name            VARCHAR(100) NOT NULL,
  phone_number    VARCHAR(16)  NOT NULL,
  email           VARCHAR(255) NOT NULL,
  address         VARCHAR(200) NOT NULL DEFAULT '',
  property_id     CHAR(36)     NOT NULL,
  lease_start     DATETIME(6)  NULL,
  lease_end       DATETIME(6)  NULL,
  lease_terms     TEXT         NOT NULL,
  lease_status    VARCHAR(16)  NOT NULL,
  payment_status  VARCHAR(16)  NOT NULL,
  declined        BOOLEAN      NOT NULL DEFAULT FALSE,
  created_at      DATETIME(6)  NOT NULL,
  updated_at      DATETIME(6)  NOT NULL,
  UNIQUE KEY uq_tenants_email (email),
  KEY idx_tenants_property (property_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"contractors", `CREATE TABLE IF NOT EXISTS contractors (
  id          CHAR(36)     NOT NULL PRIMARY KEY,
  name        VARCHAR(100) NOT NULL,
  email       VARCHAR(255) NOT NULL,
  phone       CHAR(10)     NOT NULL,
  skills      JSON         NOT NULL,
  available   BOOLEAN      NOT NULL DEFAULT TRUE,
  created_at  DATETIME(6)  NOT NULL,
  updated_at  DATETIME(6)  NOT NULL,
  UNIQUE KEY uq_contractors_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"maintenance_requests", `CREATE TABLE IF NOT EXISTS maintenance_requests (
  id               CHAR(36)     NOT NULL PRIMARY KEY,
  tenant_id        CHAR(36)     NOT NULL,
  property_id      CHAR(36)     NOT NULL,
  description      TEXT         NOT NULL,
  request_date     DATETIME(6)  NOT NULL,
  status           VARCHAR(16)  NOT NULL,
  priority         VARCHAR(8)   NOT NULL,
  contractor_id    CHAR(36)     NULL,
  assignment_date  DATETIME(6)  NULL,
  created_at       DATETIME(6)  NOT NULL,
  updated_at       DATETIME(6)  NOT NULL,
  KEY idx_maintenance_status (status),
  KEY idx_maintenance_contractor (contractor_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"users", `CREATE TABLE IF NOT EXISTS users (
  id             CHAR(36)     NOT NULL PRIMARY KEY,
  name           VARCHAR(100) NOT NULL,
  email          VARCHAR(255) NOT NULL,
  password_hash  VARCHAR(255) NOT NULL,
  role           VARCHAR(16)  NOT NULL,
  status         VARCHAR(16)  NOT NULL,
  allowed_urls   JSON         NOT NULL,
  token          CHAR(36)     NULL,
  created_at     DATETIME(6)  NOT NULL,
  updated_at     DATETIME(6)  NOT NULL,
  UNIQUE KEY uq_users_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"refresh_tokens", `CREATE TABLE IF NOT EXISTS refresh_tokens (
  token_hash  CHAR(64)    NOT NULL PRIMARY KEY,
  user_id     CHAR(36)    NOT NULL,
  expires_at  DATETIME(6) NOT NULL,
  revoked_at  DATETIME(6) NULL,
  created_at  DATETIME(6) NOT NULL,
  KEY idx_refresh_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// Tables returns the table names Migrate creates, in order.
func Tables() []string {
	out := make([]string, len(schema))
	for i, s := range schema {
		out[i] = s.table
	}
	return out
}

// Migrate creates any missing tables.  Existing tables are left untouched.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, s := range schema {
		if _, err := db.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("migrate %s: %w", s.table, err)
		}
	}
	return nil
}
