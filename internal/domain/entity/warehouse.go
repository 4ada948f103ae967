package entity

import "time"

// Estados compartidos por bodegas y ubicaciones.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Warehouse representa una bodega física. Dato maestro de larga vida; su ciclo
// de vida se gestiona administrativamente y el núcleo del kardex solo lo consulta.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// IsActive indica si la bodega está operativa.
func (w *Warehouse) IsActive() bool {
	return w.Status == StatusActive
}
