package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
)

// AdminHandler serves maintenance endpoints.
type AdminHandler struct {
	items  *usecase.ItemUseCase
	dedupe *usecase.DedupeUseCase
}

func NewAdminHandler(items *usecase.ItemUseCase, dedupe *usecase.DedupeUseCase) *AdminHandler {
	return &AdminHandler{items: items, dedupe: dedupe}
}

// Dedupe godoc
// @Summary      Merge duplicate items
// @Description  Items sharing a folded name, vendor and category key collapse into the oldest one. Units take the max, other fields keep the survivor's value when set.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.DedupeResponse
// @Router       /api/admin/dedupe [post]
func (h *AdminHandler) Dedupe(c *fiber.Ctx) error {
	removed, err := h.dedupe.Run(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(dto.DedupeResponse{Removed: removed})
}

// Metrics godoc
// @Summary      Inventory data-quality counters
// @Tags         admin
// @Produce      json
// @Success      200  {object}  repository.ItemMetrics
// @Router       /api/admin/metrics [get]
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	m, err := h.items.Metrics(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(m)
}
