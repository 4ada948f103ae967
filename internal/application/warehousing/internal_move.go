package warehousing

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// InternalMoveLine línea de un traslado entre ubicaciones físicas de una bodega.
type InternalMoveLine struct {
	ItemID           string
	SourceLocationID string
	TargetLocationID string
	Qty              decimal.Decimal
}

// InternalMoveInput entrada del motor de traslados internos.
type InternalMoveInput struct {
	WarehouseID    string
	Lines          []InternalMoveLine
	IdempotencyKey string
	Memo           string
	Actor          string
}

// InternalMoveResult resultado del traslado. Duplicate=true es un replay seguro:
// la clave de idempotencia ya tenía asientos y no se escribió nada.
type InternalMoveResult struct {
	Posted    int
	BatchRef  string
	Duplicate bool
}

// InternalMoveUseCase valida y postea traslados multi-línea entre ubicaciones
// físicas de una misma bodega, todo-o-nada dentro de una transacción.
type InternalMoveUseCase struct {
	txRunner TxRunner
}

// NewInternalMoveUseCase construye el caso de uso.
func NewInternalMoveUseCase(txRunner TxRunner) *InternalMoveUseCase {
	return &InternalMoveUseCase{txRunner: txRunner}
}

// Execute corre el traslado completo: valida ubicaciones, fusiona líneas,
// chequea idempotencia, verifica saldos bajo bloqueo de fila y postea pares.
// Cualquier faltante aborta el lote entero sin dejar asientos parciales.
func (uc *InternalMoveUseCase) Execute(ctx context.Context, input InternalMoveInput) (InternalMoveResult, error) {
	var res InternalMoveResult
	if input.WarehouseID == "" {
		return res, &domain.ValidationError{Field: "warehouse_id", Reason: "requerido"}
	}
	if len(input.Lines) == 0 {
		return res, &domain.ValidationError{Field: "lines", Reason: "el traslado no tiene líneas"}
	}

	memo := input.Memo
	if memo == "" {
		memo = "internal move"
	}

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		// Validar ubicaciones: físicas, activas y de esta bodega; origen ≠ destino.
		locIDs := uniqueLocationIDs(input.Lines)
		locs, err := r.Locations.ListByIDs(locIDs)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.Location, len(locs))
		for _, l := range locs {
			byID[l.ID] = l
		}
		for _, id := range locIDs {
			l, ok := byID[id]
			if !ok {
				return &domain.LocationMismatchError{LocationID: id, Reason: "no existe"}
			}
			if !l.IsPhysical() {
				return &domain.LocationMismatchError{LocationID: id, Reason: "debe ser PHYSICAL"}
			}
			if !l.IsActive() {
				return &domain.LocationMismatchError{LocationID: id, Reason: "no está ACTIVE"}
			}
			if l.WarehouseID != input.WarehouseID {
				return &domain.LocationMismatchError{LocationID: id, Reason: "pertenece a otra bodega"}
			}
		}
		for _, ln := range input.Lines {
			if ln.SourceLocationID == ln.TargetLocationID {
				return &domain.LocationMismatchError{LocationID: ln.SourceLocationID, Reason: "origen y destino no pueden ser iguales"}
			}
		}

		// Fusionar líneas por (ítem, origen, destino); descartar netos ≤ 0.
		merged := mergeMoveLines(input.Lines)

		// Idempotencia: si la clave ya tiene asientos en esta bodega, replay no-op.
		batchRef := input.IdempotencyKey
		if batchRef != "" {
			exists, err := r.Ledger.ExistsByRef(input.WarehouseID, entity.RefModelInternalMove, batchRef)
			if err != nil {
				return err
			}
			if exists {
				res = InternalMoveResult{Posted: 0, BatchRef: batchRef, Duplicate: true}
				return nil
			}
		} else {
			batchRef = uuid.New().String()
		}
		res.BatchRef = batchRef

		// Bloquear todas las filas de ubicación implicadas antes de recomputar
		// saldos: evita que dos traslados concurrentes vean ambos saldo
		// suficiente y sobregiren el mismo bin.
		if err := r.Locations.LockByIDs(locIDs); err != nil {
			return err
		}

		// Verificar saldo agregado por (ítem, origen); cualquier faltante aborta todo.
		type needKey struct{ item, src string }
		need := make(map[needKey]decimal.Decimal)
		for _, ln := range merged {
			k := needKey{ln.ItemID, ln.SourceLocationID}
			need[k] = need[k].Add(ln.Qty)
		}
		needKeys := make([]needKey, 0, len(need))
		for k := range need {
			needKeys = append(needKeys, k)
		}
		sort.Slice(needKeys, func(i, j int) bool {
			if needKeys[i].src != needKeys[j].src {
				return needKeys[i].src < needKeys[j].src
			}
			return needKeys[i].item < needKeys[j].item
		})
		for _, k := range needKeys {
			available, err := r.Ledger.OnHand(input.WarehouseID, k.src, k.item)
			if err != nil {
				return err
			}
			if need[k].GreaterThan(available) {
				return &domain.InsufficientStockError{
					LocationID: k.src,
					ItemID:     k.item,
					Needed:     need[k],
					Available:  available,
				}
			}
		}

		// Postear cada línea fusionada como par de asientos con la misma referencia.
		for _, ln := range merged {
			rows, err := PostEntries(r.Ledger, PostInput{
				WarehouseID:    input.WarehouseID,
				FromLocationID: ln.SourceLocationID,
				ToLocationID:   ln.TargetLocationID,
				ItemID:         ln.ItemID,
				Qty:            ln.Qty,
				MovementType:   entity.MovementTransfer,
				RefModel:       entity.RefModelInternalMove,
				RefID:          batchRef,
				Memo:           memo,
				Actor:          input.Actor,
			})
			if err != nil {
				return err
			}
			res.Posted += rows
		}
		return nil
	})
	if err != nil {
		return InternalMoveResult{}, err
	}
	return res, nil
}

// uniqueLocationIDs ids de origen y destino sin repetir, en orden estable.
func uniqueLocationIDs(lines []InternalMoveLine) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0, len(lines)*2)
	for _, ln := range lines {
		for _, id := range []string{ln.SourceLocationID, ln.TargetLocationID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// mergeMoveLines fusiona líneas con la misma (ítem, origen, destino) sumando
// cantidades y descarta las que queden con neto ≤ 0. Devuelve orden estable.
func mergeMoveLines(lines []InternalMoveLine) []InternalMoveLine {
	type key struct{ item, src, dst string }
	bucket := make(map[key]decimal.Decimal)
	for _, ln := range lines {
		k := key{ln.ItemID, ln.SourceLocationID, ln.TargetLocationID}
		bucket[k] = bucket[k].Add(ln.Qty)
	}
	merged := make([]InternalMoveLine, 0, len(bucket))
	for k, q := range bucket {
		if !q.GreaterThan(decimal.Zero) {
			continue
		}
		merged = append(merged, InternalMoveLine{
			ItemID:           k.item,
			SourceLocationID: k.src,
			TargetLocationID: k.dst,
			Qty:              q,
		})
	}
	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.ItemID != b.ItemID {
			return a.ItemID < b.ItemID
		}
		if a.SourceLocationID != b.SourceLocationID {
			return a.SourceLocationID < b.SourceLocationID
		}
		return a.TargetLocationID < b.TargetLocationID
	})
	return merged
}
