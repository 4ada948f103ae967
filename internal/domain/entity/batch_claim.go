package entity

import "time"

// BatchClaim token de idempotencia de un lote de putaway. La restricción única
// (warehouse_id, batch_reference) en la base serializa los envíos duplicados:
// el primer insert gana y el resto recibe un no-op con duplicate=true, sin
// escribir asientos. No carga significado de negocio; puede podarse tras una
// ventana de retención sin afectar asientos ya posteados.
type BatchClaim struct {
	ID             string
	WarehouseID    string
	BatchReference string
	Fingerprint    string
	CreatedBy      string
	CreatedAt      time.Time
}
