package usecase_test

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

func intp(n int) *int { return &n }

func strp(s string) *string { return &s }

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// fakeItemRepo is an in-memory ItemRepository for use-case tests.
type fakeItemRepo struct {
	nextID int64
	items  map[int64]entity.Item
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{nextID: 1, items: map[int64]entity.Item{}}
}

func (f *fakeItemRepo) sorted(less func(a, b entity.Item) bool) []entity.Item {
	out := make([]entity.Item, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (f *fakeItemRepo) List(_ context.Context, _ repository.ItemFilter) ([]entity.Item, error) {
	return f.sorted(func(a, b entity.Item) bool {
		av, bv := a.VendorName(), b.VendorName()
		if av != bv {
			return av < bv
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Name < b.Name
	}), nil
}

func (f *fakeItemRepo) ListAllByID(_ context.Context) ([]entity.Item, error) {
	return f.sorted(func(a, b entity.Item) bool { return a.ID < b.ID }), nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (f *fakeItemRepo) Create(_ context.Context, it *entity.Item) error {
	it.ID = f.nextID
	f.nextID++
	f.items[it.ID] = *it
	return nil
}

func (f *fakeItemRepo) Update(_ context.Context, it *entity.Item) error {
	if _, ok := f.items[it.ID]; !ok {
		return domain.ErrNotFound
	}
	f.items[it.ID] = *it
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) Facets(_ context.Context) ([]string, []string, error) {
	seenCat := map[string]bool{}
	seenVen := map[string]bool{}
	var cats, vens []string
	for _, it := range f.items {
		if !seenCat[it.Category] {
			seenCat[it.Category] = true
			cats = append(cats, it.Category)
		}
		if it.Vendor != nil && !seenVen[*it.Vendor] {
			seenVen[*it.Vendor] = true
			vens = append(vens, *it.Vendor)
		}
	}
	sort.Strings(cats)
	sort.Strings(vens)
	return cats, vens, nil
}

func (f *fakeItemRepo) Metrics(_ context.Context) (repository.ItemMetrics, error) {
	m := repository.ItemMetrics{Total: len(f.items)}
	for _, it := range f.items {
		if it.CaseSize == 0 {
			m.MissingCaseSize++
		}
		if it.ParCases == nil {
			m.MissingParCases++
		}
	}
	return m, nil
}

// fakeTxRunner hands the fake repo straight to the callback; commit semantics
// are the real TxRunner's job and are not under test here.
type fakeTxRunner struct {
	repo *fakeItemRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repo repository.ItemRepository) error) error {
	return fn(f.repo)
}
