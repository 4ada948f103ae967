package warehousing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// PostInput parámetros del posteo primitivo. FromLocationID y ToLocationID son
// opcionales pero al menos uno debe estar presente; Qty siempre es positiva,
// el signo de cada asiento lo aplica el poster.
type PostInput struct {
	WarehouseID    string
	FromLocationID string
	ToLocationID   string
	ItemID         string
	Qty            decimal.Decimal
	MovementType   entity.MovementType
	RefModel       string
	RefID          string
	Memo           string
	Actor          string
}

// PostEntries escribe el par de asientos de un movimiento (débito en origen,
// crédito en destino) dentro de la transacción del caller y devuelve cuántas
// filas escribió. No verifica suficiencia de saldo: esa validación es del motor
// que llama, bajo sus propios bloqueos de fila. Mantener el primitivo así de
// simple es lo que lo hace reutilizable por los tres motores.
func PostEntries(ledgerRepo repository.LedgerRepository, in PostInput) (int, error) {
	if !in.Qty.GreaterThan(decimal.Zero) {
		return 0, domain.ErrInvalidQuantity
	}
	if in.FromLocationID == "" && in.ToLocationID == "" {
		return 0, domain.ErrInvalidEndpoints
	}

	now := time.Now()
	rows := 0
	if in.FromLocationID != "" {
		err := ledgerRepo.Create(&entity.LedgerEntry{
			ID:           uuid.New().String(),
			WarehouseID:  in.WarehouseID,
			LocationID:   in.FromLocationID,
			ItemID:       in.ItemID,
			QtyDelta:     in.Qty.Neg(),
			MovementType: in.MovementType,
			RefModel:     in.RefModel,
			RefID:        in.RefID,
			Memo:         in.Memo,
			CreatedBy:    in.Actor,
			CreatedAt:    now,
		})
		if err != nil {
			return rows, err
		}
		rows++
	}
	if in.ToLocationID != "" {
		err := ledgerRepo.Create(&entity.LedgerEntry{
			ID:           uuid.New().String(),
			WarehouseID:  in.WarehouseID,
			LocationID:   in.ToLocationID,
			ItemID:       in.ItemID,
			QtyDelta:     in.Qty,
			MovementType: in.MovementType,
			RefModel:     in.RefModel,
			RefID:        in.RefID,
			Memo:         in.Memo,
			CreatedBy:    in.Actor,
			CreatedAt:    now,
		})
		if err != nil {
			return rows, err
		}
		rows++
	}
	return rows, nil
}
