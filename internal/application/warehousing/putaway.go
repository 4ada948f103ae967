package warehousing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/ledger"
)

// PutawayActionType tipo de acción de un lote de putaway.
type PutawayActionType string

const (
	PutawayActionPutaway PutawayActionType = "PUTAWAY"
	PutawayActionLost    PutawayActionType = "LOST"
)

// PutawayAction acción individual: mover stock desde un bin de staging
// (RETURN o RECEIVE) hacia una ubicación física, o declararlo perdido.
type PutawayAction struct {
	Type             PutawayActionType
	ItemID           string
	SourceBinID      string
	TargetLocationID string // requerido para PUTAWAY; vacío para LOST
	Qty              decimal.Decimal
}

// PutawayInput entrada del motor de putaway. OverrideKey es el prefijo opcional
// del cliente que fuerza una referencia distinta cuando se quiere saltar la
// deduplicación por huella a propósito.
type PutawayInput struct {
	WarehouseID string
	Actions     []PutawayAction
	OverrideKey string
	Actor       string
}

// PutawayResult resultado del lote. Duplicate=true indica un replay: otro
// request ya reclamó esta misma referencia y no se escribió ningún asiento.
type PutawayResult struct {
	PostedCount int
	BatchRef    string
	Duplicate   bool
}

// PutawayUseCase postea lotes que sacan stock de los bins de staging. Los
// idempotency keys del cliente no son confiables (faltan, se reusan o
// colisionan), así que la referencia del lote se deriva de una huella canónica
// del contenido y se reclama con un insert único como primer statement de la
// transacción: la restricción única de la base es la que garantiza a-lo-sumo-una
// ejecución, sin lock distribuido aparte.
type PutawayUseCase struct {
	txRunner TxRunner
}

// NewPutawayUseCase construye el caso de uso.
func NewPutawayUseCase(txRunner TxRunner) *PutawayUseCase {
	return &PutawayUseCase{txRunner: txRunner}
}

// Execute valida, fusiona y postea el lote completo dentro de una transacción.
// Cualquier falla de validación revierte también el reclamo de idempotencia:
// ningún lote parcial es observable jamás.
func (uc *PutawayUseCase) Execute(ctx context.Context, input PutawayInput) (PutawayResult, error) {
	var res PutawayResult
	if input.WarehouseID == "" {
		return res, &domain.ValidationError{Field: "warehouse_id", Reason: "requerido"}
	}
	if len(input.Actions) == 0 {
		return res, &domain.ValidationError{Field: "actions", Reason: "el lote no tiene acciones"}
	}
	for i, a := range input.Actions {
		switch a.Type {
		case PutawayActionPutaway:
			if a.TargetLocationID == "" {
				return res, &domain.ValidationError{
					Field:  fmt.Sprintf("actions[%d].target_location", i),
					Reason: "requerido para PUTAWAY",
				}
			}
		case PutawayActionLost:
			// sin destino explícito: va al bin LOST de la bodega
		default:
			return res, &domain.ValidationError{
				Field:  fmt.Sprintf("actions[%d].type", i),
				Reason: "debe ser PUTAWAY o LOST",
			}
		}
		if !a.Qty.GreaterThan(decimal.Zero) {
			return res, &domain.ValidationError{
				Field:  fmt.Sprintf("actions[%d].qty", i),
				Reason: "debe ser mayor que cero",
			}
		}
	}

	// Fusionar por (tipo, ítem, bin origen, destino) y derivar la referencia
	// determinística del lote a partir de la huella canónica.
	merged := mergePutawayActions(input.Actions)
	fp := ledger.Fingerprint(fingerprintActions(merged))
	batchRef := ledger.BatchReference(fp, input.OverrideKey)
	res.BatchRef = batchRef

	err := uc.txRunner.Run(ctx, func(r Repos) error {
		// Reclamo de idempotencia como primer statement de la transacción.
		err := r.Claims.Insert(&entity.BatchClaim{
			ID:             uuid.New().String(),
			WarehouseID:    input.WarehouseID,
			BatchReference: batchRef,
			Fingerprint:    fp,
			CreatedBy:      input.Actor,
			CreatedAt:      time.Now(),
		})
		if errors.Is(err, domain.ErrDuplicate) {
			res.Duplicate = true
			res.PostedCount = 0
			return nil
		}
		if err != nil {
			return err
		}

		// Bloquear los bins origen implicados: serializa lotes concurrentes
		// que tocan el mismo bin antes de recomputar saldos.
		srcIDs := uniqueSourceBinIDs(merged)
		if err := r.Locations.LockByIDs(srcIDs); err != nil {
			return err
		}

		// Validar bins origen y destinos.
		allIDs := append([]string{}, srcIDs...)
		for _, a := range merged {
			if a.Type == PutawayActionPutaway {
				allIDs = append(allIDs, a.TargetLocationID)
			}
		}
		locs, err := r.Locations.ListByIDs(dedupe(allIDs))
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.Location, len(locs))
		for _, l := range locs {
			byID[l.ID] = l
		}
		for _, a := range merged {
			src, ok := byID[a.SourceBinID]
			if !ok {
				return &domain.LocationMismatchError{LocationID: a.SourceBinID, Reason: "no existe"}
			}
			if src.WarehouseID != input.WarehouseID {
				return &domain.LocationMismatchError{LocationID: a.SourceBinID, Reason: "pertenece a otra bodega"}
			}
			if !src.IsPutawaySource() {
				return &domain.LocationMismatchError{LocationID: a.SourceBinID, Reason: "el origen debe ser un bin RETURN o RECEIVE"}
			}
			if a.Type == PutawayActionPutaway {
				tgt, ok := byID[a.TargetLocationID]
				if !ok {
					return &domain.LocationMismatchError{LocationID: a.TargetLocationID, Reason: "no existe"}
				}
				if tgt.WarehouseID != input.WarehouseID {
					return &domain.LocationMismatchError{LocationID: a.TargetLocationID, Reason: "pertenece a otra bodega"}
				}
				if !tgt.IsPhysical() {
					return &domain.LocationMismatchError{LocationID: a.TargetLocationID, Reason: "el destino debe ser PHYSICAL"}
				}
				if !tgt.IsActive() {
					return &domain.LocationMismatchError{LocationID: a.TargetLocationID, Reason: "el destino no está ACTIVE"}
				}
			}
		}

		// Verificar saldo agregado por (ítem, bin origen) bajo el bloqueo ya tomado.
		type needKey struct{ item, src string }
		need := make(map[needKey]decimal.Decimal)
		for _, a := range merged {
			k := needKey{a.ItemID, a.SourceBinID}
			need[k] = need[k].Add(a.Qty)
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

		// Resolver el bin LOST solo si el lote lo necesita; que falte es un
		// error de configuración de la bodega, no un error del caller.
		var lostBin *entity.Location
		for _, a := range merged {
			if a.Type == PutawayActionLost {
				lostBin, err = r.Locations.GetVirtual(input.WarehouseID, entity.SubtypeLost)
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("bodega %s: %w", input.WarehouseID, domain.ErrVirtualBinMissing)
				}
				if err != nil {
					return err
				}
				break
			}
		}

		// Postear pares por acción fusionada, todos con la misma referencia.
		for _, a := range merged {
			src := byID[a.SourceBinID]
			switch a.Type {
			case PutawayActionPutaway:
				memo := "putaway"
				switch src.Subtype {
				case entity.SubtypeReturn:
					memo = "return putaway"
				case entity.SubtypeReceive:
					memo = "receive putaway"
				}
				_, err = PostEntries(r.Ledger, PostInput{
					WarehouseID:    input.WarehouseID,
					FromLocationID: a.SourceBinID,
					ToLocationID:   a.TargetLocationID,
					ItemID:         a.ItemID,
					Qty:            a.Qty,
					MovementType:   entity.MovementPutaway,
					RefModel:       entity.RefModelPutaway,
					RefID:          batchRef,
					Memo:           memo,
					Actor:          input.Actor,
				})
			case PutawayActionLost:
				_, err = PostEntries(r.Ledger, PostInput{
					WarehouseID:    input.WarehouseID,
					FromLocationID: a.SourceBinID,
					ToLocationID:   lostBin.ID,
					ItemID:         a.ItemID,
					Qty:            a.Qty,
					MovementType:   entity.MovementPutawayLost,
					RefModel:       entity.RefModelPutaway,
					RefID:          batchRef,
					Memo:           "lost via putaway",
					Actor:          input.Actor,
				})
			}
			if err != nil {
				return err
			}
			res.PostedCount++
		}
		return nil
	})
	if err != nil {
		return PutawayResult{}, err
	}
	return res, nil
}

// mergePutawayActions fusiona acciones idénticas en clave sumando cantidades.
// Devuelve orden estable para posteos y huellas reproducibles.
func mergePutawayActions(actions []PutawayAction) []PutawayAction {
	type key struct {
		typ      PutawayActionType
		item     string
		src, tgt string
	}
	bucket := make(map[key]decimal.Decimal)
	for _, a := range actions {
		k := key{a.Type, a.ItemID, a.SourceBinID, a.TargetLocationID}
		bucket[k] = bucket[k].Add(a.Qty)
	}
	merged := make([]PutawayAction, 0, len(bucket))
	for k, q := range bucket {
		merged = append(merged, PutawayAction{
			Type:             k.typ,
			ItemID:           k.item,
			SourceBinID:      k.src,
			TargetLocationID: k.tgt,
			Qty:              q,
		})
	}
	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.ItemID != b.ItemID {
			return a.ItemID < b.ItemID
		}
		if a.SourceBinID != b.SourceBinID {
			return a.SourceBinID < b.SourceBinID
		}
		return a.TargetLocationID < b.TargetLocationID
	})
	return merged
}

func fingerprintActions(actions []PutawayAction) []ledger.FingerprintAction {
	out := make([]ledger.FingerprintAction, 0, len(actions))
	for _, a := range actions {
		out = append(out, ledger.FingerprintAction{
			Type:             string(a.Type),
			ItemID:           a.ItemID,
			SourceLocationID: a.SourceBinID,
			TargetLocationID: a.TargetLocationID,
			Qty:              a.Qty,
		})
	}
	return out
}

func uniqueSourceBinIDs(actions []PutawayAction) []string {
	ids := make([]string, 0, len(actions))
	for _, a := range actions {
		ids = append(ids, a.SourceBinID)
	}
	return dedupe(ids)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
