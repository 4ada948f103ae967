package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidEndpoints  = errors.New("se requiere ubicación origen o destino")
	ErrLocationMismatch  = errors.New("ubicación inválida para la operación")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrVirtualBinMissing = errors.New("bin virtual requerido no existe en la bodega")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)

// ValidationError error de validación con detalle a nivel de campo.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError detalla el faltante (requerido vs disponible) por
// ubicación e ítem, para que el caller pueda explicar el rechazo con precisión.
type InsufficientStockError struct {
	LocationID string
	ItemID     string
	Needed     decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en %s para ítem %s: requerido=%s disponible=%s",
		e.LocationID, e.ItemID, e.Needed.String(), e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// LocationMismatchError detalla por qué una ubicación no sirve para la operación
// (tipo incorrecto, inactiva, de otra bodega, origen igual a destino).
type LocationMismatchError struct {
	LocationID string
	Reason     string
}

func (e *LocationMismatchError) Error() string {
	return fmt.Sprintf("ubicación %s: %s", e.LocationID, e.Reason)
}

func (e *LocationMismatchError) Unwrap() error { return ErrLocationMismatch }

// InvalidTransitionError indica una transición ilegal de la máquina de estados
// de ajustes; incluye el estado actual para el mensaje al caller.
type InvalidTransitionError struct {
	RequestID string
	Status    string
	Action    string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("solicitud %s: no se puede %s en estado %s", e.RequestID, e.Action, e.Status)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
