package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/usecase"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
	"github.com/jhoicas/barstock-api/internal/infrastructure/excel"
	"github.com/jhoicas/barstock-api/internal/infrastructure/pdf"
)

// OrderHandler serves the vendor-grouped order summary and its file exports.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) filter(c *fiber.Ctx) repository.ItemFilter {
	return repository.ItemFilter{
		Q:        c.Query("q"),
		Category: c.Query("category"),
		Vendor:   c.Query("vendor"),
	}
}

// Summary godoc
// @Summary      Order summary grouped by vendor and category
// @Tags         orders
// @Produce      json
// @Param        q         query  string  false  "Substring match on name, category, vendor"
// @Param        category  query  string  false  "Exact category"
// @Param        vendor    query  string  false  "Exact vendor"
// @Param        all       query  string  false  "Set to 1 to include items with nothing to order"
// @Success      200  {object}  dto.OrderSummaryResponse
// @Router       /api/orders/summary [get]
func (h *OrderHandler) Summary(c *fiber.Ctx) error {
	s, err := h.uc.Summary(c.Context(), h.filter(c), c.Query("all") == "1")
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(usecase.SummaryToResponse(s))
}

// ExportXLSX godoc
// @Summary      Download the order summary as an xlsx workbook
// @Tags         orders
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        all  query  string  false  "Set to 1 to include items with nothing to order"
// @Success      200  {file}  file
// @Router       /api/orders/summary.xlsx [get]
func (h *OrderHandler) ExportXLSX(c *fiber.Ctx) error {
	includeAll := c.Query("all") == "1"
	s, err := h.uc.Summary(c.Context(), h.filter(c), includeAll)
	if err != nil {
		return internalError(c, err)
	}
	now := time.Now().UTC()
	f, err := excel.BuildOrderWorkbook(s, now)
	if err != nil {
		return internalError(c, err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", excel.Filename(includeAll, now)))
	return c.Send(buf.Bytes())
}

// ExportPDF godoc
// @Summary      Download the order summary as a purchase-order PDF
// @Tags         orders
// @Produce      application/pdf
// @Param        all  query  string  false  "Set to 1 to include items with nothing to order"
// @Success      200  {file}  file
// @Router       /api/orders/summary.pdf [get]
func (h *OrderHandler) ExportPDF(c *fiber.Ctx) error {
	includeAll := c.Query("all") == "1"
	s, err := h.uc.Summary(c.Context(), h.filter(c), includeAll)
	if err != nil {
		return internalError(c, err)
	}
	now := time.Now().UTC()
	doc, err := pdf.BuildOrderPDF(s, now)
	if err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", pdf.Filename(includeAll, now)))
	return c.Send(doc)
}
