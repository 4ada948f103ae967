package warehousing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// PutawayKPIBin métricas de un subtipo de bin de staging.
type PutawayKPIBin struct {
	Qty         decimal.Decimal
	Items       int
	LastMovedAt *time.Time
}

// PutawayKPIs métricas agregadas de los bins RETURN y RECEIVE de una bodega.
type PutawayKPIs struct {
	Return     PutawayKPIBin
	Receive    PutawayKPIBin
	TotalQty   decimal.Decimal
	TotalItems int
}

// StockUseCase consultas de saldo y del kardex (lecturas puras, sin bloqueo).
type StockUseCase struct {
	ledgerRepo repository.LedgerRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(ledgerRepo repository.LedgerRepository) *StockUseCase {
	return &StockUseCase{ledgerRepo: ledgerRepo}
}

// OnHand saldo actual de (bodega, ubicación, ítem); 0 si no hay asientos.
func (uc *StockUseCase) OnHand(warehouseID, locationID, itemID string) (decimal.Decimal, error) {
	return uc.ledgerRepo.OnHand(warehouseID, locationID, itemID)
}

// LedgerByLocation movimientos de una ubicación en un rango de fechas.
func (uc *StockUseCase) LedgerByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	return uc.ledgerRepo.ListByLocation(locationID, from, to, limit, offset)
}

// LedgerByItem movimientos de un ítem en una bodega en un rango de fechas.
func (uc *StockUseCase) LedgerByItem(warehouseID, itemID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	return uc.ledgerRepo.ListByItem(warehouseID, itemID, from, to, limit, offset)
}

// PutawayList saldos positivos pendientes de putaway por ítem y bin.
func (uc *StockUseCase) PutawayList(warehouseID string) ([]*repository.PutawayStockRow, error) {
	return uc.ledgerRepo.PutawayStock(warehouseID)
}

// PutawayKPIs agrega las filas de staging en métricas por subtipo de bin.
func (uc *StockUseCase) PutawayKPIs(warehouseID string) (*PutawayKPIs, error) {
	rows, err := uc.ledgerRepo.PutawayStock(warehouseID)
	if err != nil {
		return nil, err
	}
	kpis := &PutawayKPIs{}
	items := make(map[string]bool)
	for _, row := range rows {
		var bin *PutawayKPIBin
		switch row.Subtype {
		case entity.SubtypeReturn:
			bin = &kpis.Return
		case entity.SubtypeReceive:
			bin = &kpis.Receive
		default:
			continue
		}
		bin.Qty = bin.Qty.Add(row.Qty)
		bin.Items++
		moved := row.LastMovedAt
		if bin.LastMovedAt == nil || moved.After(*bin.LastMovedAt) {
			t := moved
			bin.LastMovedAt = &t
		}
		kpis.TotalQty = kpis.TotalQty.Add(row.Qty)
		items[row.ItemID] = true
	}
	kpis.TotalItems = len(items)
	return kpis, nil
}
