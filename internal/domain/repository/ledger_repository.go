package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// PutawayStockRow saldo positivo pendiente de putaway, agrupado por ítem y bin.
type PutawayStockRow struct {
	ItemID      string
	LocationID  string
	Subtype     entity.LocationSubtype
	Qty         decimal.Decimal
	LastMovedAt time.Time
}

// LedgerRepository define el puerto de persistencia del kardex (append-only).
// Create es la única escritura: los asientos jamás se actualizan ni se borran.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	// OnHand suma los deltas de (bodega, ubicación, ítem); 0 si no hay asientos.
	// Lectura pura: el caller que hace check-then-act debe tomarla bajo el
	// mismo bloqueo/transacción que la escritura posterior.
	OnHand(warehouseID, locationID, itemID string) (decimal.Decimal, error)
	// ExistsByRef indica si ya hay asientos con esa referencia en la bodega
	// (replay seguro de claves de idempotencia).
	ExistsByRef(warehouseID, refModel, refID string) (bool, error)
	// HasStock indica si alguna combinación ítem+ubicación tiene saldo distinto
	// de cero en la ubicación (impide desactivar ubicaciones con inventario).
	HasStock(locationID string) (bool, error)
	ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
	ListByItem(warehouseID, itemID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error)
	// PutawayStock lista saldos positivos en los bins RETURN/RECEIVE de la bodega.
	PutawayStock(warehouseID string) ([]*PutawayStockRow, error)
}
