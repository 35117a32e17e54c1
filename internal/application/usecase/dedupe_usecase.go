package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/domain/stock"
	"github.com/jhoicas/barstock-api/pkg/logger"
)

// DedupeUseCase merges records that represent the same item and deletes the
// absorbed duplicates, all in one transaction.
type DedupeUseCase struct {
	tx  TxRunner
	log *logger.Logger
}

// NewDedupeUseCase constructs the use case.
func NewDedupeUseCase(tx TxRunner, log *logger.Logger) *DedupeUseCase {
	return &DedupeUseCase{tx: tx, log: log}
}

// Run reconciles duplicates and returns how many records were removed.
// Running it again immediately removes zero.
func (uc *DedupeUseCase) Run(ctx context.Context) (int, error) {
	runID := uuid.New().String()
	log := uc.log.With().Str("dedupe_run", runID).Logger()

	removed := 0
	err := uc.tx.Run(ctx, func(repo repository.ItemRepository) error {
		items, err := repo.ListAllByID(ctx)
		if err != nil {
			return err
		}
		plan := stock.PlanDedupe(items)

		now := time.Now().UTC()
		for i := range plan.Keep {
			plan.Keep[i].UpdatedAt = now
			if err := repo.Update(ctx, &plan.Keep[i]); err != nil {
				return err
			}
		}
		for _, id := range plan.Remove {
			if err := repo.Delete(ctx, id); err != nil {
				return err
			}
		}
		removed = plan.Removed()
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Info().Int("removed", removed).Msg("dedupe committed")
	return removed, nil
}
