package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
)

// ItemUseCase covers CRUD, listing with filters, and the stock-health counters.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase constructs the use case.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create builds an item from the form input and persists it. Blank or
// unparseable numeric input coerces silently, see dto.ItemRequest.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	it := &entity.Item{Name: name}
	applyRequest(it, in)
	it.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return toItemResponse(it), nil
}

// GetByID returns one item, or nil when the id does not exist.
func (uc *ItemUseCase) GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	it, err := uc.repo.GetByID(ctx, id)
	if err != nil || it == nil {
		return nil, err
	}
	return toItemResponse(it), nil
}

// Update replaces the item with the posted form state, coercing like Create.
// Returns nil when the id does not exist.
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.ItemRequest) (*dto.ItemResponse, error) {
	it, err := uc.repo.GetByID(ctx, id)
	if err != nil || it == nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	it.Name = name
	applyRequest(it, in)
	it.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return toItemResponse(it), nil
}

// Delete removes an item. Returns domain.ErrNotFound for unknown ids.
func (uc *ItemUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List returns items matching the filter, ordered by vendor, category, name.
// With toOrderOnly set, only items with at least one case to order remain.
func (uc *ItemUseCase) List(ctx context.Context, f repository.ItemFilter, toOrderOnly bool) (*dto.ItemListResponse, error) {
	items, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		if toOrderOnly && stock.CasesToOrder(&items[i]) == 0 {
			continue
		}
		out = append(out, *toItemResponse(&items[i]))
	}
	return &dto.ItemListResponse{Items: out, Count: len(out)}, nil
}

// Facets returns the distinct categories and vendors for the filter menus.
func (uc *ItemUseCase) Facets(ctx context.Context) (*dto.FacetsResponse, error) {
	categories, vendors, err := uc.repo.Facets(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.FacetsResponse{Categories: categories, Vendors: vendors}, nil
}

// Metrics returns the admin counters (total, missing case size, missing par).
func (uc *ItemUseCase) Metrics(ctx context.Context) (repository.ItemMetrics, error) {
	return uc.repo.Metrics(ctx)
}

// applyRequest maps the tolerant form fields onto the entity. Name is handled
// by the caller because create and update validate it differently from the
// optional fields.
func applyRequest(it *entity.Item, in dto.ItemRequest) {
	it.Category = stock.DefaultCategory
	if !stock.Blank(in.Category) {
		it.Category = strings.TrimSpace(in.Category)
	}
	it.Unit = stock.DefaultUnit
	if !stock.Blank(in.Unit) {
		it.Unit = strings.TrimSpace(in.Unit)
	}
	it.CaseSize = stock.CoerceInt(in.CaseSize, 0)
	it.CurrentUnits = stock.CoerceInt(in.CurrentUnits, 0)

	it.ParCases = nil
	if !stock.Blank(in.ParCases) {
		n := stock.CoerceInt(in.ParCases, 0)
		it.ParCases = &n
	}
	it.ParUnits = nil
	if !stock.Blank(in.ParUnits) {
		n := stock.CoerceInt(in.ParUnits, 0)
		it.ParUnits = &n
	}
	it.Vendor = nil
	if !stock.Blank(in.Vendor) {
		v := strings.TrimSpace(in.Vendor)
		it.Vendor = &v
	}
	it.CostPerCase = nil
	if !stock.Blank(in.CostPerCase) {
		if d, err := decimal.NewFromString(strings.TrimSpace(in.CostPerCase)); err == nil {
			it.CostPerCase = &d
		}
	}
	it.LeadTimeDays = nil
	if !stock.Blank(in.LeadTimeDays) {
		n := stock.CoerceInt(in.LeadTimeDays, 0)
		it.LeadTimeDays = &n
	}
	it.Notes = nil
	if in.Notes != "" {
		n := in.Notes
		it.Notes = &n
	}
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:           it.ID,
		Name:         it.Name,
		Category:     it.Category,
		Unit:         it.Unit,
		CaseSize:     it.CaseSize,
		ParCases:     it.ParCases,
		ParUnits:     it.ParUnits,
		CurrentUnits: it.CurrentUnits,
		Vendor:       it.Vendor,
		CostPerCase:  it.CostPerCase,
		LeadTimeDays: it.LeadTimeDays,
		Notes:        it.Notes,
		UpdatedAt:    it.UpdatedAt,
		CasesToOrder: stock.CasesToOrder(it),
	}
	if par, ok := stock.ResolvePar(it); ok {
		resp.ParResolved = &par
		need := par - it.CurrentUnits
		resp.NeededUnits = &need
	}
	return resp
}
