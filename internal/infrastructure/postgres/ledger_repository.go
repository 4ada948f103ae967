package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// La tabla stock_ledger es append-only: solo INSERT y agregaciones.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create persiste un asiento del kardex.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_ledger (id, warehouse_id, location_id, item_id, qty_delta, movement_type, ref_model, ref_id, memo, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	createdBy := (*string)(nil)
	if entry.CreatedBy != "" {
		createdBy = &entry.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.WarehouseID, entry.LocationID, entry.ItemID,
		entry.QtyDelta, string(entry.MovementType), entry.RefModel, entry.RefID,
		entry.Memo, createdBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// OnHand suma los deltas de (bodega, ubicación, ítem); 0 si no hay asientos.
func (r *LedgerRepo) OnHand(warehouseID, locationID, itemID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(qty_delta), 0)
		FROM stock_ledger
		WHERE warehouse_id = $1 AND location_id = $2 AND item_id = $3`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, warehouseID, locationID, itemID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("on hand: %w", err)
	}
	return total, nil
}

// ExistsByRef indica si ya hay asientos con esa referencia en la bodega.
func (r *LedgerRepo) ExistsByRef(warehouseID, refModel, refID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stock_ledger
			WHERE warehouse_id = $1 AND ref_model = $2 AND ref_id = $3
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, warehouseID, refModel, refID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by ref: %w", err)
	}
	return exists, nil
}

// HasStock indica si algún ítem tiene saldo distinto de cero en la ubicación.
func (r *LedgerRepo) HasStock(locationID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stock_ledger
			WHERE location_id = $1
			GROUP BY item_id
			HAVING SUM(qty_delta) <> 0
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, locationID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has stock: %w", err)
	}
	return exists, nil
}

const ledgerColumns = `id, warehouse_id, location_id, item_id, qty_delta, movement_type, ref_model, ref_id, memo, created_by, created_at`

// ListByLocation lista asientos de una ubicación en un rango de fechas.
func (r *LedgerRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE location_id = $1`
	args := []any{locationID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args)
}

// ListByItem lista asientos de un ítem en una bodega en un rango de fechas.
func (r *LedgerRepo) ListByItem(warehouseID, itemID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE warehouse_id = $1 AND item_id = $2`
	args := []any{warehouseID, itemID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args)
}

func appendDateRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", len(args)+1)
		args = append(args, *to)
	}
	return query, args
}

func (r *LedgerRepo) list(query string, args []any) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var movementType string
		var createdBy *string
		if err := rows.Scan(&e.ID, &e.WarehouseID, &e.LocationID, &e.ItemID,
			&e.QtyDelta, &movementType, &e.RefModel, &e.RefID, &e.Memo,
			&createdBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.MovementType = entity.MovementType(movementType)
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// PutawayStock saldos positivos en bins RETURN/RECEIVE de la bodega,
// agrupados por ítem y bin.
func (r *LedgerRepo) PutawayStock(warehouseID string) ([]*repository.PutawayStockRow, error) {
	query := `
		SELECT sl.item_id, sl.location_id, loc.subtype, SUM(sl.qty_delta) AS qty, MAX(sl.created_at) AS last_moved_at
		FROM stock_ledger sl
		JOIN locations loc ON loc.id = sl.location_id
		WHERE sl.warehouse_id = $1
		  AND loc.type = 'VIRTUAL'
		  AND loc.subtype IN ('RETURN', 'RECEIVE')
		GROUP BY sl.item_id, sl.location_id, loc.subtype
		HAVING SUM(sl.qty_delta) > 0
		ORDER BY sl.item_id, sl.location_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("putaway stock: %w", err)
	}
	defer rows.Close()
	var list []*repository.PutawayStockRow
	for rows.Next() {
		var row repository.PutawayStockRow
		var subtype string
		if err := rows.Scan(&row.ItemID, &row.LocationID, &subtype, &row.Qty, &row.LastMovedAt); err != nil {
			return nil, fmt.Errorf("scan putaway stock: %w", err)
		}
		row.Subtype = entity.LocationSubtype(subtype)
		list = append(list, &row)
	}
	return list, rows.Err()
}
