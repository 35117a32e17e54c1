package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/infrastructure/csvio"
	apphttp "github.com/jhoicas/barstock-api/internal/interfaces/http"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

func intp(n int) *int { return &n }

func strp(s string) *string { return &s }

// memRepo is an in-memory ItemRepository for handler tests.
type memRepo struct {
	nextID int64
	items  map[int64]entity.Item
}

var _ repository.ItemRepository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, items: map[int64]entity.Item{}}
}

func (m *memRepo) sorted(less func(a, b entity.Item) bool) []entity.Item {
	out := make([]entity.Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (m *memRepo) List(_ context.Context, _ repository.ItemFilter) ([]entity.Item, error) {
	return m.sorted(func(a, b entity.Item) bool {
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

func (m *memRepo) ListAllByID(_ context.Context) ([]entity.Item, error) {
	return m.sorted(func(a, b entity.Item) bool { return a.ID < b.ID }), nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*entity.Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (m *memRepo) Create(_ context.Context, it *entity.Item) error {
	it.ID = m.nextID
	m.nextID++
	m.items[it.ID] = *it
	return nil
}

func (m *memRepo) Update(_ context.Context, it *entity.Item) error {
	if _, ok := m.items[it.ID]; !ok {
		return domain.ErrNotFound
	}
	m.items[it.ID] = *it
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo) Facets(_ context.Context) ([]string, []string, error) {
	seenCat := map[string]bool{}
	seenVen := map[string]bool{}
	var cats, vens []string
	for _, it := range m.items {
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

func (m *memRepo) Metrics(_ context.Context) (repository.ItemMetrics, error) {
	out := repository.ItemMetrics{Total: len(m.items)}
	for _, it := range m.items {
		if it.CaseSize == 0 {
			out.MissingCaseSize++
		}
		if it.ParCases == nil {
			out.MissingParCases++
		}
	}
	return out, nil
}

type memTxRunner struct {
	repo *memRepo
}

func (m *memTxRunner) Run(_ context.Context, fn func(repo repository.ItemRepository) error) error {
	return fn(m.repo)
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(_ context.Context) error { return f.err }

func buildTestApp(t *testing.T, repo *memRepo, ping apphttp.Pinger) *fiber.App {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	tx := &memTxRunner{repo: repo}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:   usecase.NewItemUseCase(repo),
		OrderUC:  usecase.NewOrderUseCase(repo),
		CSVUC:    usecase.NewCSVUseCase(repo, tx, csvio.NewCodec(), log),
		DedupeUC: usecase.NewDedupeUseCase(tx, log),
		DB:       ping,
		AppName:  "barstock-test",
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func seedItem(t *testing.T, repo *memRepo, it entity.Item) int64 {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &it))
	return it.ID
}

func TestCreateItemCoercesAndDerives(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})

	resp := doJSON(t, app, fiber.MethodPost, "/api/items/", dto.ItemRequest{
		Name:         "Tito's",
		Vendor:       "Southern",
		CaseSize:     "12",
		ParCases:     "3",
		CurrentUnits: "10",
		CostPerCase:  "180",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	got := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, "Tito's", got.Name)
	assert.Equal(t, "Spirits", got.Category, "blank category falls back to the default")
	assert.Equal(t, "bottle", got.Unit)
	require.NotNil(t, got.ParResolved)
	assert.Equal(t, 36, *got.ParResolved)
	require.NotNil(t, got.NeededUnits)
	assert.Equal(t, 26, *got.NeededUnits)
	assert.Equal(t, 3, got.CasesToOrder)
}

func TestCreateItemBlankNumbersAreTolerated(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})

	resp := doJSON(t, app, fiber.MethodPost, "/api/items/", dto.ItemRequest{
		Name:     "Well Gin",
		CaseSize: "not a number",
		ParCases: "",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	got := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, 0, got.CaseSize)
	assert.Nil(t, got.ParCases)
	assert.Equal(t, 0, got.CasesToOrder, "no case size means nothing to order")
}

func TestCreateItemRequiresName(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})

	resp := doJSON(t, app, fiber.MethodPost, "/api/items/", dto.ItemRequest{Name: "   "})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	got := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", got.Code)
}

func TestGetUpdateDeleteItem(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})
	id := seedItem(t, repo, entity.Item{Name: "Campari", Category: "Spirits", Unit: "bottle", CaseSize: 6})

	resp := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/items/%d", id), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Campari", decode[dto.ItemResponse](t, resp).Name)

	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/items/%d", id), dto.ItemRequest{
		Name:         "Campari",
		CurrentUnits: "4",
		CaseSize:     "6",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, decode[dto.ItemResponse](t, resp).CurrentUnits)

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/items/%d", id), nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestItemNotFoundAndBadID(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})

	resp := doJSON(t, app, fiber.MethodGet, "/api/items/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/items/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/api/items/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Well-formed but unknown ids, zero included, are not-found rather than
	// rejected as malformed.
	resp = doJSON(t, app, fiber.MethodGet, "/api/items/0", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodDelete, "/api/items/0", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListToOrderFilter(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})
	seedItem(t, repo, entity.Item{Name: "Short", Category: "Spirits", Unit: "bottle", CaseSize: 12, ParCases: intp(3), CurrentUnits: 10})
	seedItem(t, repo, entity.Item{Name: "Stocked", Category: "Spirits", Unit: "bottle", CaseSize: 12, ParCases: intp(1), CurrentUnits: 24})

	resp := doJSON(t, app, fiber.MethodGet, "/api/items/?to_order=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.ItemListResponse](t, resp)
	require.Equal(t, 1, got.Count)
	assert.Equal(t, "Short", got.Items[0].Name)
}

func TestFacets(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})
	seedItem(t, repo, entity.Item{Name: "A", Category: "Beer", Unit: "can", Vendor: strp("Breakthru")})
	seedItem(t, repo, entity.Item{Name: "B", Category: "Spirits", Unit: "bottle"})

	resp := doJSON(t, app, fiber.MethodGet, "/api/items/facets", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.FacetsResponse](t, resp)
	assert.Equal(t, []string{"Beer", "Spirits"}, got.Categories)
	assert.Equal(t, []string{"Breakthru"}, got.Vendors)
}

func TestOrderSummaryJSON(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})
	seedItem(t, repo, entity.Item{Name: "Tito's", Category: "Spirits", Unit: "bottle", CaseSize: 12, ParCases: intp(3), CurrentUnits: 10, Vendor: strp("Southern")})
	seedItem(t, repo, entity.Item{Name: "Stocked", Category: "Spirits", Unit: "bottle", CaseSize: 12, ParCases: intp(1), CurrentUnits: 24})

	resp := doJSON(t, app, fiber.MethodGet, "/api/orders/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[dto.OrderSummaryResponse](t, resp)
	require.Len(t, got.Vendors, 1, "fully stocked items stay out of the order")
	assert.Equal(t, "Southern", got.Vendors[0].Vendor)

	resp = doJSON(t, app, fiber.MethodGet, "/api/orders/summary?all=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got = decode[dto.OrderSummaryResponse](t, resp)
	assert.Len(t, got.Vendors, 2)
}

func TestOrderSummaryXLSXDownload(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})
	seedItem(t, repo, entity.Item{Name: "Tito's", Category: "Spirits", Unit: "bottle", CaseSize: 12, ParCases: intp(3), CurrentUnits: 10, Vendor: strp("Southern")})

	resp := doJSON(t, app, fiber.MethodGet, "/api/orders/summary.xlsx", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "bar_order_")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, body)
}

func TestOrderSummaryPDFDownload(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})
	seedItem(t, repo, entity.Item{Name: "Tito's", Category: "Spirits", Unit: "bottle", CaseSize: 12, ParCases: intp(3), CurrentUnits: 10, Vendor: strp("Southern")})

	resp := doJSON(t, app, fiber.MethodGet, "/api/orders/summary.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestCSVExportDownload(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})
	seedItem(t, repo, entity.Item{Name: "Campari", Category: "Spirits", Unit: "bottle", CaseSize: 6})

	resp := doJSON(t, app, fiber.MethodGet, "/api/export.csv", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), csvio.ExportFilename)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "name,category,unit"))
	assert.Contains(t, string(body), "Campari")
}

func TestCSVImportUpload(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})

	csv := "name,category,unit,case_size,par_cases,par_units,current_units,vendor,cost_per_case,lead_time_days,notes\n" +
		"Tito's,Spirits,bottle,12,3,,10,Southern,180,,\n" +
		",Spirits,bottle,,,,,,,,\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	got := decode[dto.ImportResponse](t, resp)
	assert.Equal(t, 1, got.Created)
	assert.Equal(t, 0, got.Skipped, "blank names are ignored, not counted as skipped")
}

func TestCSVImportMissingFile(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})

	resp := doJSON(t, app, fiber.MethodPost, "/api/import", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAdminDedupe(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})
	seedItem(t, repo, entity.Item{Name: "Tito's", Category: "Spirits", Unit: "bottle", CurrentUnits: 5, Vendor: strp("Southern")})
	seedItem(t, repo, entity.Item{Name: "tito's", Category: "Spirits", Unit: "bottle", CurrentUnits: 9, Vendor: strp("southern")})

	resp := doJSON(t, app, fiber.MethodPost, "/api/admin/dedupe", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[dto.DedupeResponse](t, resp).Removed)

	left, err := repo.ListAllByID(context.Background())
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, 9, left[0].CurrentUnits)
}

func TestAdminMetrics(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{})
	seedItem(t, repo, entity.Item{Name: "NoCase", Category: "Spirits", Unit: "bottle"})
	seedItem(t, repo, entity.Item{Name: "Full", Category: "Spirits", Unit: "bottle", CaseSize: 12, ParCases: intp(2)})

	resp := doJSON(t, app, fiber.MethodGet, "/api/admin/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	got := decode[repository.ItemMetrics](t, resp)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.MissingCaseSize)
	assert.Equal(t, 1, got.MissingParCases)
}

func TestHealthEndpoints(t *testing.T) {
	repo := newMemRepo()

	app := buildTestApp(t, repo, fakePinger{})
	resp := doJSON(t, app, fiber.MethodGet, "/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, "/health/db", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "up", body["db"])
	assert.Contains(t, body, "duration_ms")

	down := buildTestApp(t, repo, fakePinger{err: errors.New("connection refused")})
	resp = doJSON(t, down, fiber.MethodGet, "/health/db", nil)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	body = decode[map[string]any](t, resp)
	assert.Equal(t, "degraded", body["status"])
}

func TestHealthLiveIsDBFree(t *testing.T) {
	repo := newMemRepo()
	app := buildTestApp(t, repo, fakePinger{err: errors.New("db down")})

	resp := doJSON(t, app, fiber.MethodGet, "/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "ok", body["status"])
}
