package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// WarehouseResponse representación HTTP de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProvisionBinsResponse resultado de la provisión de bins virtuales.
type ProvisionBinsResponse struct {
	Created int `json:"created"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	WarehouseID string `json:"warehouse_id"`
	Type        string `json:"type"`
	Subtype     string `json:"subtype,omitempty"`
	Code        string `json:"code,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// UpdateLocationStatusRequest body para PATCH /api/locations/:id/status.
type UpdateLocationStatusRequest struct {
	Status string `json:"status"`
}

// LocationResponse representación HTTP de una ubicación.
type LocationResponse struct {
	ID            string `json:"id"`
	WarehouseID   string `json:"warehouse_id"`
	Type          string `json:"type"`
	Subtype       string `json:"subtype,omitempty"`
	Code          string `json:"code,omitempty"`
	DisplayName   string `json:"display_name,omitempty"`
	SystemManaged bool   `json:"system_managed"`
	Status        string `json:"status"`
}

// InternalMoveLineRequest línea de un traslado interno.
type InternalMoveLineRequest struct {
	ItemID           string          `json:"item_id"`
	SourceLocationID string          `json:"source_location_id"`
	TargetLocationID string          `json:"target_location_id"`
	Qty              decimal.Decimal `json:"qty"`
}

// InternalMoveRequest body para POST /api/internal-moves.
type InternalMoveRequest struct {
	WarehouseID    string                    `json:"warehouse_id"`
	Lines          []InternalMoveLineRequest `json:"lines"`
	IdempotencyKey string                    `json:"idempotency_key,omitempty"`
	Memo           string                    `json:"memo,omitempty"`
}

// InternalMoveResponse resultado del traslado interno.
type InternalMoveResponse struct {
	Posted    int    `json:"posted"`
	BatchRef  string `json:"batch_ref"`
	Duplicate bool   `json:"duplicate"`
}

// PutawayActionRequest acción de un lote de putaway.
type PutawayActionRequest struct {
	Type             string          `json:"type"` // PUTAWAY | LOST
	ItemID           string          `json:"item_id"`
	SourceBinID      string          `json:"source_bin_id"`
	TargetLocationID string          `json:"target_location_id,omitempty"`
	Qty              decimal.Decimal `json:"qty"`
}

// PutawayBatchRequest body para POST /api/warehouses/:id/putaway.
type PutawayBatchRequest struct {
	Actions        []PutawayActionRequest `json:"actions"`
	IdempotencyKey string                 `json:"idempotency_key,omitempty"`
}

// PutawayBatchResponse resultado del lote de putaway.
type PutawayBatchResponse struct {
	PostedCount int    `json:"posted_count"`
	BatchRef    string `json:"batch_ref"`
	Duplicate   bool   `json:"duplicate"`
}

// PutawayListRow fila del listado de stock pendiente de putaway.
type PutawayListRow struct {
	ItemID      string          `json:"item_id"`
	BinID       string          `json:"bin_id"`
	BinSubtype  string          `json:"bin_subtype"`
	Qty         decimal.Decimal `json:"qty"`
	LastMovedAt time.Time       `json:"last_moved_at"`
}

// PutawayKPIBinResponse métricas de un subtipo de bin de staging.
type PutawayKPIBinResponse struct {
	Qty         decimal.Decimal `json:"qty"`
	Items       int             `json:"items"`
	LastMovedAt *time.Time      `json:"last_moved_at,omitempty"`
}

// PutawayKPIsResponse métricas agregadas de putaway por bodega.
type PutawayKPIsResponse struct {
	WarehouseID string                `json:"warehouse_id"`
	Return      PutawayKPIBinResponse `json:"return"`
	Receive     PutawayKPIBinResponse `json:"receive"`
	TotalQty    decimal.Decimal       `json:"total_qty"`
	TotalItems  int                   `json:"total_items"`
}

// OnHandResponse saldo actual de (bodega, ubicación, ítem).
type OnHandResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	LocationID  string          `json:"location_id"`
	ItemID      string          `json:"item_id"`
	Qty         decimal.Decimal `json:"qty"`
}

// LedgerEntryResponse asiento del kardex en listados.
type LedgerEntryResponse struct {
	ID           string          `json:"id"`
	WarehouseID  string          `json:"warehouse_id"`
	LocationID   string          `json:"location_id"`
	ItemID       string          `json:"item_id"`
	QtyDelta     decimal.Decimal `json:"qty_delta"`
	MovementType string          `json:"movement_type"`
	RefModel     string          `json:"ref_model,omitempty"`
	RefID        string          `json:"ref_id,omitempty"`
	Memo         string          `json:"memo,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CreateAdjustmentRequest body para POST /api/adjustments.
type CreateAdjustmentRequest struct {
	WarehouseID      string          `json:"warehouse_id"`
	Type             string          `json:"type"` // DAMAGE | LOST | EXCESS
	ItemID           string          `json:"item_id"`
	SourceLocationID string          `json:"source_location_id,omitempty"`
	Qty              decimal.Decimal `json:"qty"`
	Memo             string          `json:"memo,omitempty"`
}

// AdjustmentResponse representación HTTP de una solicitud de ajuste.
type AdjustmentResponse struct {
	ID               string          `json:"id"`
	Number           string          `json:"number"`
	WarehouseID      string          `json:"warehouse_id"`
	Type             string          `json:"type"`
	ItemID           string          `json:"item_id"`
	SourceLocationID string          `json:"source_location_id,omitempty"`
	Qty              decimal.Decimal `json:"qty"`
	Status           string          `json:"status"`
	Memo             string          `json:"memo,omitempty"`
	RequestedBy      string          `json:"requested_by"`
	RequestedAt      time.Time       `json:"requested_at"`
	ApprovedBy       string          `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	DeclinedBy       string          `json:"declined_by,omitempty"`
	DeclinedAt       *time.Time      `json:"declined_at,omitempty"`
}
