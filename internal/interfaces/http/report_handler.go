package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// ReportHandler sirve el reporte PDF de stock bajo.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStockPDF godoc
// @Summary      Reporte PDF de stock bajo
// @Description  Descarga un PDF con los productos bajo su umbral mínimo.
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/low-stock.pdf [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.LowStockPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("stock-bajo-%s.pdf", time.Now().Format("20060102"))
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
