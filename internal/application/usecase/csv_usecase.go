package usecase

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// TxRunner runs fn with a repository bound to a single transaction; the whole
// callback commits or rolls back as one unit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.ItemRepository) error) error
}

// CSVCodec is the port to the CSV collaborator: header-named string rows in,
// the export column order out.
type CSVCodec interface {
	Parse(r io.Reader) ([]map[string]string, error)
	Write(w io.Writer, items []entity.Item) error
}

// CSVUseCase handles bulk exchange: export of the whole inventory and the
// reconciling import.
type CSVUseCase struct {
	repo  repository.ItemRepository
	tx    TxRunner
	codec CSVCodec
	log   *logger.Logger
}

// NewCSVUseCase constructs the use case.
func NewCSVUseCase(repo repository.ItemRepository, tx TxRunner, codec CSVCodec, log *logger.Logger) *CSVUseCase {
	return &CSVUseCase{repo: repo, tx: tx, codec: codec, log: log}
}

// Export writes the full inventory as CSV, ordered by category then name.
func (uc *CSVUseCase) Export(ctx context.Context, w io.Writer) error {
	items, err := uc.repo.List(ctx, repository.ItemFilter{})
	if err != nil {
		return err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return uc.codec.Write(w, items)
}

// Import reconciles CSV rows against the inventory inside one transaction.
// Rows matching an existing item merge into it; the rest create new items.
// Blank names are ignored, malformed rows are skipped and logged, and a
// mid-file failure never leaves a partially applied import behind.
func (uc *CSVUseCase) Import(ctx context.Context, r io.Reader) (dto.ImportResponse, error) {
	var resp dto.ImportResponse

	rows, err := uc.codec.Parse(r)
	if err != nil {
		return resp, err
	}

	runID := uuid.New().String()
	log := uc.log.With().Str("import_run", runID).Logger()
	log.Info().Int("rows", len(rows)).Msg("csv import started")

	err = uc.tx.Run(ctx, func(repo repository.ItemRepository) error {
		existing, err := repo.ListAllByID(ctx)
		if err != nil {
			return err
		}
		// First match wins for pre-existing duplicates: ids ascend, so the
		// index keeps the oldest record per key, like the lookup always did.
		byKey := make(map[stock.MatchKey]*entity.Item, len(existing))
		for i := range existing {
			k := stock.KeyForItem(&existing[i])
			if _, ok := byKey[k]; !ok {
				byKey[k] = &existing[i]
			}
		}

		now := time.Now().UTC()
		for n, row := range rows {
			if stock.Blank(row["name"]) {
				continue
			}
			key := stock.KeyForRow(row)
			if it, ok := byKey[key]; ok {
				merged := *it
				if err := stock.ApplyRow(&merged, row); err != nil {
					resp.Skipped++
					log.Warn().Err(err).Int("row", n+1).Str("name", row["name"]).Msg("row skipped")
					continue
				}
				merged.UpdatedAt = now
				if err := repo.Update(ctx, &merged); err != nil {
					return err
				}
				*it = merged
				continue
			}

			it, err := stock.NewItemFromRow(row)
			if err != nil {
				resp.Skipped++
				log.Warn().Err(err).Int("row", n+1).Str("name", row["name"]).Msg("row skipped")
				continue
			}
			it.UpdatedAt = now
			if err := repo.Create(ctx, it); err != nil {
				return err
			}
			byKey[key] = it
			resp.Created++
		}
		return nil
	})
	if err != nil {
		return dto.ImportResponse{}, err
	}

	log.Info().Int("created", resp.Created).Int("skipped", resp.Skipped).Msg("csv import committed")
	return resp, nil
}
