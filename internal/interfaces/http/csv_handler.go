package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/barstock-api/internal/application/dto"
	"github.com/jhoicas/barstock-api/internal/application/usecase"
	"github.com/jhoicas/barstock-api/internal/infrastructure/csvio"
)

// CSVHandler serves the CSV export and import endpoints.
type CSVHandler struct {
	uc *usecase.CSVUseCase
}

func NewCSVHandler(uc *usecase.CSVUseCase) *CSVHandler {
	return &CSVHandler{uc: uc}
}

// Export godoc
// @Summary      Download the full inventory as CSV
// @Tags         csv
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/export.csv [get]
func (h *CSVHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.uc.Export(c.Context(), &buf); err != nil {
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", csvio.ExportFilename))
	return c.Send(buf.Bytes())
}

// Import godoc
// @Summary      Import inventory rows from an uploaded CSV
// @Description  Rows matching an existing item by folded name, vendor and category merge into it. Unmatched rows create new items. Malformed rows are skipped and counted.
// @Tags         csv
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file with the export header"
// @Success      200  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import [post]
func (h *CSVHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "multipart field 'file' is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return internalError(c, err)
	}
	defer src.Close()

	out, err := h.uc.Import(c.Context(), src)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
