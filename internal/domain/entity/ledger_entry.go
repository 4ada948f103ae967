package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType clasifica el movimiento que originó un asiento del kardex.
// Conjunto cerrado: los motores despachan con switch exhaustivo, no con
// comparaciones de strings sueltas.
type MovementType string

const (
	MovementTransfer    MovementType = "TRANSFER"
	MovementPutaway     MovementType = "PUTAWAY"
	MovementPutawayLost MovementType = "PUTAWAY_LOST"

	MovementAdjRequestDamage  MovementType = "ADJ_REQ_DAMAGE"
	MovementAdjRequestLost    MovementType = "ADJ_REQ_LOST"
	MovementAdjRequestExcess  MovementType = "ADJ_REQ_EXCESS"
	MovementAdjApproveDamage  MovementType = "ADJ_APPROVE_DAMAGE"
	MovementAdjApproveLost    MovementType = "ADJ_APPROVE_LOST"
	MovementAdjApproveExcess  MovementType = "ADJ_APPROVE_EXCESS"
	MovementAdjDeclineDamage  MovementType = "ADJ_DECLINE_DAMAGE"
	MovementAdjDeclineLost    MovementType = "ADJ_DECLINE_LOST"
	MovementAdjDeleteRequest  MovementType = "ADJ_DELETE_REQUEST"
)

// Modelos de referencia usados en ref_model para agrupar pares de asientos.
const (
	RefModelInternalMove = "INTERNAL_MOVE"
	RefModelPutaway      = "PUTAWAY"
	RefModelAdjustment   = "ADJUSTMENT"
)

// LedgerEntry asiento inmutable del kardex: un delta firmado de cantidad sobre
// (bodega, ubicación, ítem). Es la única fuente de verdad del stock disponible;
// nunca se actualiza ni se borra. Todo traslado son dos asientos pareados que
// comparten (ref_model, ref_id), salvo la excepción unilateral de EXCESS.
type LedgerEntry struct {
	ID           string
	WarehouseID  string
	LocationID   string
	ItemID       string
	QtyDelta     decimal.Decimal // positivo entrada, negativo salida
	MovementType MovementType
	RefModel     string
	RefID        string
	Memo         string
	CreatedBy    string
	CreatedAt    time.Time
}
