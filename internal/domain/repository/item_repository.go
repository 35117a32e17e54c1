package repository

import (
	"context"

	"github.com/jhoicas/barstock-api/internal/domain/entity"
)

// ItemFilter narrows item listings. Q is a case-insensitive substring match on
// name, category and vendor; Category and Vendor are exact matches.
type ItemFilter struct {
	Q        string
	Category string
	Vendor   string
}

// ItemMetrics are the stock-health counters shown on the admin page.
type ItemMetrics struct {
	Total           int `json:"total"`
	MissingCaseSize int `json:"missing_case_size"`
	MissingParCases int `json:"missing_par_cases"`
}

// ItemRepository is the persistence port for items (DIP). Listings come back
// ordered by (vendor, category, name) ascending, the order every view and
// export relies on.
type ItemRepository interface {
	List(ctx context.Context, f ItemFilter) ([]entity.Item, error)
	// ListAllByID returns every item ordered by id ascending (dedupe order).
	ListAllByID(ctx context.Context) ([]entity.Item, error)
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	Create(ctx context.Context, it *entity.Item) error
	Update(ctx context.Context, it *entity.Item) error
	Delete(ctx context.Context, id int64) error
	// Facets returns the distinct categories and assigned vendors, sorted.
	Facets(ctx context.Context) (categories, vendors []string, err error)
	Metrics(ctx context.Context) (ItemMetrics, error)
}
