package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, category, unit, case_size, par_cases, par_units,
	current_units, vendor, cost_per_case, lead_time_days, notes, updated_at`

// ItemRepo implements the ItemRepository port over PostgreSQL. Pass a pool or
// a tx (Querier).
type ItemRepo struct {
	q Querier
}

// NewItemRepository constructs the persistence adapter for items.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// List returns items matching the filter ordered by (vendor, category, name).
// Q is a case-insensitive substring match across name, category and vendor;
// Category and Vendor filter exactly.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]entity.Item, error) {
	var (
		where []string
		args  []any
	)
	if f.Q != "" {
		args = append(args, "%"+f.Q+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(name ILIKE $%d OR category ILIKE $%d OR vendor ILIKE $%d)", n, n, n))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Vendor != "" {
		args = append(args, f.Vendor)
		where = append(where, fmt.Sprintf("vendor = $%d", len(args)))
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY vendor ASC, category ASC, name ASC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// ListAllByID returns every item ordered by id ascending.
func (r *ItemRepo) ListAllByID(ctx context.Context) ([]entity.Item, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list items by id: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// GetByID returns one item, or nil when it does not exist.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id).
		Scan(scanTargets(&it)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Create inserts the item and fills its generated id.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO items (name, category, unit, case_size, par_cases, par_units,
			current_units, vendor, cost_per_case, lead_time_days, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		it.Name, it.Category, it.Unit, it.CaseSize, it.ParCases, it.ParUnits,
		it.CurrentUnits, it.Vendor, it.CostPerCase, it.LeadTimeDays, it.Notes,
		it.UpdatedAt,
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update replaces every mutable column. Unknown ids map to domain.ErrNotFound.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE items SET name = $2, category = $3, unit = $4, case_size = $5,
			par_cases = $6, par_units = $7, current_units = $8, vendor = $9,
			cost_per_case = $10, lead_time_days = $11, notes = $12, updated_at = $13
		WHERE id = $1`,
		it.ID, it.Name, it.Category, it.Unit, it.CaseSize, it.ParCases,
		it.ParUnits, it.CurrentUnits, it.Vendor, it.CostPerCase, it.LeadTimeDays,
		it.Notes, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an item. Unknown ids map to domain.ErrNotFound.
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Facets returns the distinct categories and assigned vendors, sorted.
func (r *ItemRepo) Facets(ctx context.Context) (categories, vendors []string, err error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT category FROM items ORDER BY category ASC`)
	if err != nil {
		return nil, nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	vrows, err := r.q.Query(ctx,
		`SELECT DISTINCT vendor FROM items WHERE vendor IS NOT NULL ORDER BY vendor ASC`)
	if err != nil {
		return nil, nil, fmt.Errorf("list vendors: %w", err)
	}
	defer vrows.Close()
	for vrows.Next() {
		var v string
		if err := vrows.Scan(&v); err != nil {
			return nil, nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return categories, vendors, vrows.Err()
}

// Metrics returns the admin stock-health counters.
func (r *ItemRepo) Metrics(ctx context.Context) (repository.ItemMetrics, error) {
	var m repository.ItemMetrics
	err := r.q.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE case_size IS NULL OR case_size = 0),
			count(*) FILTER (WHERE par_cases IS NULL)
		FROM items`).
		Scan(&m.Total, &m.MissingCaseSize, &m.MissingParCases)
	if err != nil {
		return m, fmt.Errorf("item metrics: %w", err)
	}
	return m, nil
}

func scanTargets(it *entity.Item) []any {
	return []any{
		&it.ID, &it.Name, &it.Category, &it.Unit, &it.CaseSize, &it.ParCases,
		&it.ParUnits, &it.CurrentUnits, &it.Vendor, &it.CostPerCase,
		&it.LeadTimeDays, &it.Notes, &it.UpdatedAt,
	}
}

func scanItems(rows pgx.Rows) ([]entity.Item, error) {
	var list []entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(scanTargets(&it)...); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
