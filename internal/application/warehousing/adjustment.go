package warehousing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// CreateAdjustmentInput entrada del alta de una solicitud de ajuste.
// SourceLocationID es obligatorio para DAMAGE/LOST y debe quedar vacío para
// EXCESS (el stock encontrado no salió de ninguna ubicación).
type CreateAdjustmentInput struct {
	WarehouseID      string
	Type             entity.AdjustmentType
	ItemID           string
	SourceLocationID string
	Qty              decimal.Decimal
	Memo             string
	Actor            string
}

// AdjustmentUseCase máquina de estados de solicitudes de ajuste. Cada
// transición postea sus asientos y muta la solicitud en una sola transacción;
// las lecturas van directo al repositorio sobre el pool.
type AdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.AdjustmentRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(txRunner TxRunner, adjustmentRepo repository.AdjustmentRepository) *AdjustmentUseCase {
	return &AdjustmentUseCase{txRunner: txRunner, adjustmentRepo: adjustmentRepo}
}

// Create registra la solicitud y postea de inmediato la retención en el bin
// pendiente: DAMAGE/LOST debitan el origen (falla con stock insuficiente);
// EXCESS solo acredita EXCESS_PENDING, sin débito (excepción documentada).
func (uc *AdjustmentUseCase) Create(ctx context.Context, input CreateAdjustmentInput) (*entity.AdjustmentRequest, error) {
	if input.WarehouseID == "" {
		return nil, &domain.ValidationError{Field: "warehouse_id", Reason: "requerido"}
	}
	if input.ItemID == "" {
		return nil, &domain.ValidationError{Field: "item_id", Reason: "requerido"}
	}
	if !input.Qty.GreaterThan(decimal.Zero) {
		return nil, &domain.ValidationError{Field: "qty", Reason: "debe ser mayor que cero"}
	}
	pendingSubtype, ok := input.Type.PendingSubtype()
	if !ok {
		return nil, &domain.ValidationError{Field: "type", Reason: "debe ser DAMAGE, LOST o EXCESS"}
	}
	if input.Type.RequiresSource() && input.SourceLocationID == "" {
		return nil, &domain.ValidationError{Field: "source_location_id", Reason: "requerido para DAMAGE y LOST"}
	}
	if !input.Type.RequiresSource() && input.SourceLocationID != "" {
		return nil, &domain.ValidationError{Field: "source_location_id", Reason: "debe quedar vacío para EXCESS"}
	}

	var req *entity.AdjustmentRequest
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		number, err := r.Adjustments.NextNumber()
		if err != nil {
			return err
		}
		pending, err := r.Locations.GetVirtual(input.WarehouseID, pendingSubtype)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("bodega %s: %w", input.WarehouseID, domain.ErrVirtualBinMissing)
		}
		if err != nil {
			return err
		}
		movement, _ := input.Type.RequestMovement()

		now := time.Now()
		req = &entity.AdjustmentRequest{
			ID:               uuid.New().String(),
			Number:           number,
			WarehouseID:      input.WarehouseID,
			Type:             input.Type,
			ItemID:           input.ItemID,
			SourceLocationID: input.SourceLocationID,
			Qty:              input.Qty,
			Status:           entity.AdjustmentRequested,
			Memo:             input.Memo,
			RequestedBy:      input.Actor,
			RequestedAt:      now,
		}

		if input.Type.RequiresSource() {
			src, err := r.Locations.GetByID(input.SourceLocationID)
			if errors.Is(err, domain.ErrNotFound) {
				return &domain.LocationMismatchError{LocationID: input.SourceLocationID, Reason: "no existe"}
			}
			if err != nil {
				return err
			}
			if src.WarehouseID != input.WarehouseID {
				return &domain.LocationMismatchError{LocationID: src.ID, Reason: "pertenece a otra bodega"}
			}
			if !src.IsPhysical() {
				return &domain.LocationMismatchError{LocationID: src.ID, Reason: "el origen debe ser PHYSICAL"}
			}
			if !src.IsActive() {
				return &domain.LocationMismatchError{LocationID: src.ID, Reason: "no está ACTIVE"}
			}
			// Bloqueo de fila antes del chequeo de saldo (check-then-act).
			if err := r.Locations.LockByIDs([]string{src.ID}); err != nil {
				return err
			}
			available, err := r.Ledger.OnHand(input.WarehouseID, src.ID, input.ItemID)
			if err != nil {
				return err
			}
			if input.Qty.GreaterThan(available) {
				return &domain.InsufficientStockError{
					LocationID: src.ID,
					ItemID:     input.ItemID,
					Needed:     input.Qty,
					Available:  available,
				}
			}
			if _, err := PostEntries(r.Ledger, PostInput{
				WarehouseID:    input.WarehouseID,
				FromLocationID: src.ID,
				ToLocationID:   pending.ID,
				ItemID:         input.ItemID,
				Qty:            input.Qty,
				MovementType:   movement,
				RefModel:       entity.RefModelAdjustment,
				RefID:          req.ID,
				Memo:           number,
				Actor:          input.Actor,
			}); err != nil {
				return err
			}
		} else {
			// EXCESS: crédito unilateral, stock encontrado sin origen.
			if _, err := PostEntries(r.Ledger, PostInput{
				WarehouseID:  input.WarehouseID,
				ToLocationID: pending.ID,
				ItemID:       input.ItemID,
				Qty:          input.Qty,
				MovementType: movement,
				RefModel:     entity.RefModelAdjustment,
				RefID:        req.ID,
				Memo:         number,
				Actor:        input.Actor,
			}); err != nil {
				return err
			}
		}
		return r.Adjustments.Create(req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Approve mueve el stock del bin pendiente a su bin terminal y marca la
// solicitud como APPROVED. Falla con transición inválida si no está REQUESTED.
func (uc *AdjustmentUseCase) Approve(ctx context.Context, requestID, actor string) (*entity.AdjustmentRequest, error) {
	var req *entity.AdjustmentRequest
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		req, err = uc.lockRequested(r, requestID, "approve")
		if err != nil {
			return err
		}
		pending, terminal, err := uc.resolveBins(r, req)
		if err != nil {
			return err
		}
		movement, _ := req.Type.ApproveMovement()
		if err := r.Locations.LockByIDs([]string{pending.ID}); err != nil {
			return err
		}
		if _, err := PostEntries(r.Ledger, PostInput{
			WarehouseID:    req.WarehouseID,
			FromLocationID: pending.ID,
			ToLocationID:   terminal.ID,
			ItemID:         req.ItemID,
			Qty:            req.Qty,
			MovementType:   movement,
			RefModel:       entity.RefModelAdjustment,
			RefID:          req.ID,
			Memo:           req.Number,
			Actor:          actor,
		}); err != nil {
			return err
		}
		now := time.Now()
		req.Status = entity.AdjustmentApproved
		req.ApprovedBy = actor
		req.ApprovedAt = &now
		return r.Adjustments.Update(req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Decline devuelve la retención al origen para DAMAGE/LOST (nada se dañó ni
// perdió en realidad) y marca DECLINED. Para EXCESS no se mueve stock: nunca
// se debitó ninguna ubicación al crear la solicitud.
func (uc *AdjustmentUseCase) Decline(ctx context.Context, requestID, actor string) (*entity.AdjustmentRequest, error) {
	var req *entity.AdjustmentRequest
	err := uc.txRunner.Run(ctx, func(r Repos) error {
		var err error
		req, err = uc.lockRequested(r, requestID, "decline")
		if err != nil {
			return err
		}
		if movement, ok := req.Type.DeclineMovement(); ok {
			pending, _, err := uc.resolveBins(r, req)
			if err != nil {
				return err
			}
			if err := r.Locations.LockByIDs([]string{pending.ID}); err != nil {
				return err
			}
			if _, err := PostEntries(r.Ledger, PostInput{
				WarehouseID:    req.WarehouseID,
				FromLocationID: pending.ID,
				ToLocationID:   req.SourceLocationID,
				ItemID:         req.ItemID,
				Qty:            req.Qty,
				MovementType:   movement,
				RefModel:       entity.RefModelAdjustment,
				RefID:          req.ID,
				Memo:           req.Number,
				Actor:          actor,
			}); err != nil {
				return err
			}
		}
		now := time.Now()
		req.Status = entity.AdjustmentDeclined
		req.DeclinedBy = actor
		req.DeclinedAt = &now
		return r.Adjustments.Update(req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Delete elimina una solicitud aún REQUESTED, posteando antes la reversa
// compensatoria para que el efecto neto en el kardex sea cero. Para EXCESS la
// reversa es el débito unilateral que anula el crédito del alta.
func (uc *AdjustmentUseCase) Delete(ctx context.Context, requestID, actor string) error {
	return uc.txRunner.Run(ctx, func(r Repos) error {
		req, err := uc.lockRequested(r, requestID, "delete")
		if err != nil {
			return err
		}
		pending, _, err := uc.resolveBins(r, req)
		if err != nil {
			return err
		}
		if err := r.Locations.LockByIDs([]string{pending.ID}); err != nil {
			return err
		}
		if _, err := PostEntries(r.Ledger, PostInput{
			WarehouseID:    req.WarehouseID,
			FromLocationID: pending.ID,
			ToLocationID:   req.SourceLocationID, // vacío para EXCESS: débito unilateral
			ItemID:         req.ItemID,
			Qty:            req.Qty,
			MovementType:   entity.MovementAdjDeleteRequest,
			RefModel:       entity.RefModelAdjustment,
			RefID:          req.ID,
			Memo:           req.Number,
			Actor:          actor,
		}); err != nil {
			return err
		}
		return r.Adjustments.Delete(req.ID)
	})
}

// lockRequested carga la solicitud bajo bloqueo de fila y exige estado
// REQUESTED; así cada transición es efectiva a lo sumo una vez.
func (uc *AdjustmentUseCase) lockRequested(r Repos, requestID, action string) (*entity.AdjustmentRequest, error) {
	req, err := r.Adjustments.GetForUpdate(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != entity.AdjustmentRequested {
		return nil, &domain.InvalidTransitionError{
			RequestID: requestID,
			Status:    string(req.Status),
			Action:    action,
		}
	}
	return req, nil
}

// resolveBins resuelve el bin pendiente y el terminal del tipo de la solicitud.
func (uc *AdjustmentUseCase) resolveBins(r Repos, req *entity.AdjustmentRequest) (pending, terminal *entity.Location, err error) {
	pendingSubtype, _ := req.Type.PendingSubtype()
	terminalSubtype, _ := req.Type.TerminalSubtype()
	pending, err = r.Locations.GetVirtual(req.WarehouseID, pendingSubtype)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("bodega %s: %w", req.WarehouseID, domain.ErrVirtualBinMissing)
	}
	if err != nil {
		return nil, nil, err
	}
	terminal, err = r.Locations.GetVirtual(req.WarehouseID, terminalSubtype)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("bodega %s: %w", req.WarehouseID, domain.ErrVirtualBinMissing)
	}
	if err != nil {
		return nil, nil, err
	}
	return pending, terminal, nil
}

// List consulta de solicitudes, fuera de transacción (lectura pura).
func (uc *AdjustmentUseCase) List(warehouseID string, status entity.AdjustmentStatus, limit, offset int) ([]*entity.AdjustmentRequest, error) {
	return uc.adjustmentRepo.List(warehouseID, status, limit, offset)
}

// GetByID consulta una solicitud por id; domain.ErrNotFound si no existe.
func (uc *AdjustmentUseCase) GetByID(id string) (*entity.AdjustmentRequest, error) {
	return uc.adjustmentRepo.GetByID(id)
}
