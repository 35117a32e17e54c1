package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS items (
	id             BIGSERIAL PRIMARY KEY,
	name           VARCHAR(120) NOT NULL,
	category       VARCHAR(80)  NOT NULL DEFAULT 'Spirits',
	unit           VARCHAR(30)  NOT NULL DEFAULT 'bottle',
	case_size      INTEGER      NOT NULL DEFAULT 0,
	par_cases      INTEGER,
	par_units      INTEGER,
	current_units  INTEGER      NOT NULL DEFAULT 0,
	vendor         VARCHAR(120),
	cost_per_case  NUMERIC(12,2),
	lead_time_days INTEGER,
	notes          TEXT,
	updated_at     TIMESTAMPTZ  NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS items_vendor_category_name_idx
	ON items (vendor, category, name);
`

var (
	schemaOnce sync.Once
	schemaErr  error
)

// EnsureSchema creates the items table if it does not exist. It runs exactly
// once per process no matter how many callers race it; main calls it before
// the server starts listening.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schemaOnce.Do(func() {
		if _, err := pool.Exec(ctx, schemaSQL); err != nil {
			schemaErr = fmt.Errorf("ensure schema: %w", err)
		}
	})
	return schemaErr
}
