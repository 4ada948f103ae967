package warehousing_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/warehousing"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: emulan el comportamiento transaccional de PostgreSQL
// (restricción única de claims incluida) para probar los motores sin base.
// ──────────────────────────────────────────────────────────────────────────────

type fakeState struct {
	warehouses  map[string]*entity.Warehouse
	locations   map[string]*entity.Location
	entries     []*entity.LedgerEntry
	claims      map[string]*entity.BatchClaim // clave: warehouseID + "|" + batchRef
	adjustments map[string]entity.AdjustmentRequest
	seq         int64
}

func newFakeState() *fakeState {
	return &fakeState{
		warehouses:  make(map[string]*entity.Warehouse),
		locations:   make(map[string]*entity.Location),
		claims:      make(map[string]*entity.BatchClaim),
		adjustments: make(map[string]entity.AdjustmentRequest),
	}
}

// snapshot copia los contenedores mutables para poder emular rollback.
func (s *fakeState) snapshot() *fakeState {
	snap := &fakeState{
		warehouses:  make(map[string]*entity.Warehouse, len(s.warehouses)),
		locations:   make(map[string]*entity.Location, len(s.locations)),
		entries:     append([]*entity.LedgerEntry(nil), s.entries...),
		claims:      make(map[string]*entity.BatchClaim, len(s.claims)),
		adjustments: make(map[string]entity.AdjustmentRequest, len(s.adjustments)),
		seq:         s.seq,
	}
	for k, v := range s.warehouses {
		snap.warehouses[k] = v
	}
	for k, v := range s.locations {
		snap.locations[k] = v
	}
	for k, v := range s.claims {
		snap.claims[k] = v
	}
	for k, v := range s.adjustments {
		snap.adjustments[k] = v
	}
	return snap
}

func (s *fakeState) restore(snap *fakeState) {
	s.warehouses = snap.warehouses
	s.locations = snap.locations
	s.entries = snap.entries
	s.claims = snap.claims
	s.adjustments = snap.adjustments
	s.seq = snap.seq
}

// addWarehouse registra una bodega ACTIVE con todos sus bins virtuales estándar.
func (s *fakeState) addWarehouse(id string) {
	now := time.Now()
	s.warehouses[id] = &entity.Warehouse{
		ID: id, Code: "W-" + id, Name: "Bodega " + id,
		Status: entity.StatusActive, CreatedAt: now, UpdatedAt: now,
	}
	for _, subtype := range entity.StandardVirtualSubtypes {
		s.addVirtualBin(id, subtype)
	}
}

func (s *fakeState) addVirtualBin(warehouseID string, subtype entity.LocationSubtype) *entity.Location {
	loc := &entity.Location{
		ID:            uuid.New().String(),
		WarehouseID:   warehouseID,
		Type:          entity.LocationVirtual,
		Subtype:       subtype,
		SystemManaged: true,
		Status:        entity.StatusActive,
	}
	s.locations[loc.ID] = loc
	return loc
}

func (s *fakeState) addPhysical(warehouseID, id string) *entity.Location {
	loc := &entity.Location{
		ID:          id,
		WarehouseID: warehouseID,
		Type:        entity.LocationPhysical,
		Subtype:     entity.SubtypeStorage,
		Code:        id,
		DisplayName: "Estante " + id,
		Status:      entity.StatusActive,
	}
	s.locations[loc.ID] = loc
	return loc
}

func (s *fakeState) virtualBin(warehouseID string, subtype entity.LocationSubtype) *entity.Location {
	for _, loc := range s.locations {
		if loc.WarehouseID == warehouseID && loc.Type == entity.LocationVirtual && loc.Subtype == subtype {
			return loc
		}
	}
	return nil
}

// seedStock deja saldo inicial en una ubicación con un crédito unilateral.
func (s *fakeState) seedStock(warehouseID, locationID, itemID string, qty decimal.Decimal) {
	s.entries = append(s.entries, &entity.LedgerEntry{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		LocationID:  locationID,
		ItemID:      itemID,
		QtyDelta:    qty,
		CreatedAt:   time.Now(),
	})
}

func (s *fakeState) onHand(warehouseID, locationID, itemID string) decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.entries {
		if e.WarehouseID == warehouseID && e.LocationID == locationID && e.ItemID == itemID {
			total = total.Add(e.QtyDelta)
		}
	}
	return total
}

// entriesByRef asientos que comparten (ref_model, ref_id).
func (s *fakeState) entriesByRef(refModel, refID string) []*entity.LedgerEntry {
	var out []*entity.LedgerEntry
	for _, e := range s.entries {
		if e.RefModel == refModel && e.RefID == refID {
			out = append(out, e)
		}
	}
	return out
}

// ── Ledger ────────────────────────────────────────────────────────────────────

type fakeLedgerRepo struct{ s *fakeState }

func (r *fakeLedgerRepo) Create(entry *entity.LedgerEntry) error {
	r.s.entries = append(r.s.entries, entry)
	return nil
}

func (r *fakeLedgerRepo) OnHand(warehouseID, locationID, itemID string) (decimal.Decimal, error) {
	return r.s.onHand(warehouseID, locationID, itemID), nil
}

func (r *fakeLedgerRepo) ExistsByRef(warehouseID, refModel, refID string) (bool, error) {
	for _, e := range r.s.entries {
		if e.WarehouseID == warehouseID && e.RefModel == refModel && e.RefID == refID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLedgerRepo) HasStock(locationID string) (bool, error) {
	byItem := make(map[string]decimal.Decimal)
	for _, e := range r.s.entries {
		if e.LocationID == locationID {
			byItem[e.ItemID] = byItem[e.ItemID].Add(e.QtyDelta)
		}
	}
	for _, q := range byItem {
		if !q.IsZero() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLedgerRepo) ListByLocation(locationID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.LocationID == locationID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) ListByItem(warehouseID, itemID string, from, to *time.Time, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.WarehouseID == warehouseID && e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) PutawayStock(warehouseID string) ([]*repository.PutawayStockRow, error) {
	type key struct{ item, loc string }
	sums := make(map[key]decimal.Decimal)
	last := make(map[key]time.Time)
	for _, e := range r.s.entries {
		loc := r.s.locations[e.LocationID]
		if loc == nil || e.WarehouseID != warehouseID || loc.Type != entity.LocationVirtual {
			continue
		}
		if loc.Subtype != entity.SubtypeReturn && loc.Subtype != entity.SubtypeReceive {
			continue
		}
		k := key{e.ItemID, e.LocationID}
		sums[k] = sums[k].Add(e.QtyDelta)
		if e.CreatedAt.After(last[k]) {
			last[k] = e.CreatedAt
		}
	}
	var out []*repository.PutawayStockRow
	for k, q := range sums {
		if !q.GreaterThan(decimal.Zero) {
			continue
		}
		out = append(out, &repository.PutawayStockRow{
			ItemID:      k.item,
			LocationID:  k.loc,
			Subtype:     r.s.locations[k.loc].Subtype,
			Qty:         q,
			LastMovedAt: last[k],
		})
	}
	return out, nil
}

// ── Locations ─────────────────────────────────────────────────────────────────

type fakeLocationRepo struct{ s *fakeState }

func (r *fakeLocationRepo) Create(location *entity.Location) error {
	for _, l := range r.s.locations {
		if l.WarehouseID == location.WarehouseID && l.Type == entity.LocationPhysical &&
			location.Type == entity.LocationPhysical && l.Code == location.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.locations[location.ID] = location
	return nil
}

func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	loc, ok := r.s.locations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return loc, nil
}

func (r *fakeLocationRepo) ListByIDs(ids []string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, id := range ids {
		if loc, ok := r.s.locations[id]; ok {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (r *fakeLocationRepo) GetVirtual(warehouseID string, subtype entity.LocationSubtype) (*entity.Location, error) {
	if loc := r.s.virtualBin(warehouseID, subtype); loc != nil {
		return loc, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeLocationRepo) List(filter repository.LocationFilter) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, loc := range r.s.locations {
		if filter.WarehouseID != "" && loc.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.Type != "" && loc.Type != filter.Type {
			continue
		}
		if filter.Subtype != "" && loc.Subtype != filter.Subtype {
			continue
		}
		if filter.Status != "" && loc.Status != filter.Status {
			continue
		}
		out = append(out, loc)
	}
	return out, nil
}

func (r *fakeLocationRepo) UpdateStatus(id, status string) error {
	loc, ok := r.s.locations[id]
	if !ok {
		return domain.ErrNotFound
	}
	updated := *loc
	updated.Status = status
	r.s.locations[id] = &updated
	return nil
}

func (r *fakeLocationRepo) LockByIDs(ids []string) error { return nil }

// ── Warehouses ────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct{ s *fakeState }

func (r *fakeWarehouseRepo) Create(warehouse *entity.Warehouse) error {
	for _, w := range r.s.warehouses {
		if w.Code == warehouse.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.warehouses[warehouse.ID] = warehouse
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func (r *fakeWarehouseRepo) Update(warehouse *entity.Warehouse) error {
	if _, ok := r.s.warehouses[warehouse.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.warehouses[warehouse.ID] = warehouse
	return nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		out = append(out, w)
	}
	return out, nil
}

// ── Claims ────────────────────────────────────────────────────────────────────

type fakeClaimRepo struct{ s *fakeState }

func (r *fakeClaimRepo) Insert(claim *entity.BatchClaim) error {
	key := claim.WarehouseID + "|" + claim.BatchReference
	if _, exists := r.s.claims[key]; exists {
		return domain.ErrDuplicate
	}
	r.s.claims[key] = claim
	return nil
}

// ── Adjustments ───────────────────────────────────────────────────────────────

type fakeAdjustmentRepo struct{ s *fakeState }

func (r *fakeAdjustmentRepo) NextNumber() (string, error) {
	r.s.seq++
	return fmt.Sprintf("AR-%d-%04d", time.Now().Year(), r.s.seq), nil
}

func (r *fakeAdjustmentRepo) Create(request *entity.AdjustmentRequest) error {
	r.s.adjustments[request.ID] = *request
	return nil
}

func (r *fakeAdjustmentRepo) GetByID(id string) (*entity.AdjustmentRequest, error) {
	req, ok := r.s.adjustments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := req
	return &out, nil
}

func (r *fakeAdjustmentRepo) GetForUpdate(id string) (*entity.AdjustmentRequest, error) {
	return r.GetByID(id)
}

func (r *fakeAdjustmentRepo) Update(request *entity.AdjustmentRequest) error {
	if _, ok := r.s.adjustments[request.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.adjustments[request.ID] = *request
	return nil
}

func (r *fakeAdjustmentRepo) Delete(id string) error {
	if _, ok := r.s.adjustments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.adjustments, id)
	return nil
}

func (r *fakeAdjustmentRepo) List(warehouseID string, status entity.AdjustmentStatus, limit, offset int) ([]*entity.AdjustmentRequest, error) {
	var out []*entity.AdjustmentRequest
	for _, req := range r.s.adjustments {
		if req.WarehouseID != warehouseID {
			continue
		}
		if status != "" && req.Status != status {
			continue
		}
		found := req
		out = append(out, &found)
	}
	return out, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner emula el todo-o-nada: toma un snapshot del estado antes de fn y
// lo restaura si fn falla, igual que el rollback de una transacción real.
type fakeTxRunner struct{ s *fakeState }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(r warehousing.Repos) error) error {
	snap := t.s.snapshot()
	err := fn(warehousing.Repos{
		Ledger:      &fakeLedgerRepo{s: t.s},
		Locations:   &fakeLocationRepo{s: t.s},
		Claims:      &fakeClaimRepo{s: t.s},
		Adjustments: &fakeAdjustmentRepo{s: t.s},
	})
	if err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

// serialTxRunner serializa transacciones concurrentes sobre el mismo estado,
// igual que la base serializa los inserts del reclamo con su restricción única.
type serialTxRunner struct {
	mu sync.Mutex
	fakeTxRunner
}

func (t *serialTxRunner) Run(ctx context.Context, fn func(r warehousing.Repos) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fakeTxRunner.Run(ctx, fn)
}

var (
	_ warehousing.TxRunner            = (*serialTxRunner)(nil)
	_ repository.LedgerRepository     = (*fakeLedgerRepo)(nil)
	_ repository.LocationRepository   = (*fakeLocationRepo)(nil)
	_ repository.WarehouseRepository  = (*fakeWarehouseRepo)(nil)
	_ repository.BatchClaimRepository = (*fakeClaimRepo)(nil)
	_ repository.AdjustmentRepository = (*fakeAdjustmentRepo)(nil)
	_ warehousing.TxRunner            = (*fakeTxRunner)(nil)
)
