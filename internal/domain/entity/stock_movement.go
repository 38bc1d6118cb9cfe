package entity

import "time"

// Tipos de movimiento de stock (value object conceptual).
const (
	MovementKindAddition = "addition" // entrada a una bodega
	MovementKindRemoval  = "removal"  // salida de una bodega
	MovementKindTransfer = "transfer" // entre bodegas
)

// StockMovement es el hecho inmutable del ledger: un cambio de cantidad con su dirección.
// Para addition solo DestinationWarehouseID; para removal solo SourceWarehouseID;
// para transfer ambos. Nunca se actualiza ni se borra: es el sistema de registro.
type StockMovement struct {
	ID                     string
	ProductID              string
	SourceWarehouseID      *string
	DestinationWarehouseID *string
	Quantity               int64 // siempre positiva; la dirección la dan las bodegas
	Kind                   string
	Timestamp              time.Time
	CreatedBy              string // UserID
}

// ValidKind verifica que el tipo de movimiento sea uno de los conocidos.
func ValidKind(kind string) bool {
	switch kind {
	case MovementKindAddition, MovementKindRemoval, MovementKindTransfer:
		return true
	}
	return false
}
