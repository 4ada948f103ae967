package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentType tipo de ajuste reclamado sobre el stock.
type AdjustmentType string

const (
	AdjustmentDamage AdjustmentType = "DAMAGE"
	AdjustmentLost   AdjustmentType = "LOST"
	AdjustmentExcess AdjustmentType = "EXCESS"
)

// AdjustmentStatus estado de la solicitud. Las transiciones son de un solo
// sentido y una sola vez: REQUESTED → APPROVED | DECLINED, nunca se revierten.
type AdjustmentStatus string

const (
	AdjustmentRequested AdjustmentStatus = "REQUESTED"
	AdjustmentApproved  AdjustmentStatus = "APPROVED"
	AdjustmentDeclined  AdjustmentStatus = "DECLINED"
)

// AdjustmentRequest solicitud de ajuste de inventario (daño, pérdida o excedente).
// Al crearla se postea de inmediato la retención en el bin pendiente; aprobar o
// declinar la resuelve hacia su bin terminal o de vuelta al origen.
// SourceLocationID queda vacío para EXCESS: el stock encontrado no tiene origen.
type AdjustmentRequest struct {
	ID               string
	Number           string
	WarehouseID      string
	Type             AdjustmentType
	ItemID           string
	SourceLocationID string
	Qty              decimal.Decimal
	Status           AdjustmentStatus
	Memo             string
	RequestedBy      string
	RequestedAt      time.Time
	ApprovedBy       string
	ApprovedAt       *time.Time
	DeclinedBy       string
	DeclinedAt       *time.Time
}

// RequiresSource indica si el tipo debita una ubicación de origen al crearse.
// EXCESS es la excepción documentada: solo acredita el bin pendiente.
func (t AdjustmentType) RequiresSource() bool {
	return t == AdjustmentDamage || t == AdjustmentLost
}

// PendingSubtype bin virtual que retiene el stock mientras la solicitud está
// REQUESTED. ok=false si el tipo no pertenece al conjunto cerrado.
func (t AdjustmentType) PendingSubtype() (LocationSubtype, bool) {
	switch t {
	case AdjustmentDamage:
		return SubtypeDamagePending, true
	case AdjustmentLost:
		return SubtypeLostPending, true
	case AdjustmentExcess:
		return SubtypeExcessPending, true
	}
	return "", false
}

// TerminalSubtype bin destino al aprobar: DAMAGE→DAMAGE, LOST→LOST y
// EXCESS→RETURN (el excedente aprobado entra al flujo de putaway).
func (t AdjustmentType) TerminalSubtype() (LocationSubtype, bool) {
	switch t {
	case AdjustmentDamage:
		return SubtypeDamage, true
	case AdjustmentLost:
		return SubtypeLost, true
	case AdjustmentExcess:
		return SubtypeReturn, true
	}
	return "", false
}

// RequestMovement tipo de movimiento del posteo inicial de la solicitud.
func (t AdjustmentType) RequestMovement() (MovementType, bool) {
	switch t {
	case AdjustmentDamage:
		return MovementAdjRequestDamage, true
	case AdjustmentLost:
		return MovementAdjRequestLost, true
	case AdjustmentExcess:
		return MovementAdjRequestExcess, true
	}
	return "", false
}

// ApproveMovement tipo de movimiento del posteo de aprobación.
func (t AdjustmentType) ApproveMovement() (MovementType, bool) {
	switch t {
	case AdjustmentDamage:
		return MovementAdjApproveDamage, true
	case AdjustmentLost:
		return MovementAdjApproveLost, true
	case AdjustmentExcess:
		return MovementAdjApproveExcess, true
	}
	return "", false
}

// DeclineMovement tipo de movimiento del posteo de rechazo. ok=false para
// EXCESS: declinar un excedente no mueve stock (nada se debitó al crearlo).
func (t AdjustmentType) DeclineMovement() (MovementType, bool) {
	switch t {
	case AdjustmentDamage:
		return MovementAdjDeclineDamage, true
	case AdjustmentLost:
		return MovementAdjDeclineLost, true
	case AdjustmentExcess:
		return "", false
	}
	return "", false
}
