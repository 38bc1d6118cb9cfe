package reports

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// LowStockPDFGenerator puerto para renderizar el reporte de stock bajo.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, alerts []dto.LowStockAlertDTO, generatedAt time.Time) ([]byte, error)
}
