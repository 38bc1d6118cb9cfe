package reports

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// ReportUseCase genera el reporte PDF de productos bajo su umbral de stock mínimo.
type ReportUseCase struct {
	alerts    *inventory.AlertsUseCase
	generator LowStockPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(alerts *inventory.AlertsUseCase, generator LowStockPDFGenerator) *ReportUseCase {
	return &ReportUseCase{alerts: alerts, generator: generator}
}

// LowStockPDF arma la lista de alertas vigente y la renderiza a PDF.
func (uc *ReportUseCase) LowStockPDF(ctx context.Context) ([]byte, error) {
	alerts, err := uc.alerts.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateLowStockPDF(ctx, alerts, time.Now())
}
