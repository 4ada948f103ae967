package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.BatchClaimRepository = (*BatchClaimRepo)(nil)

// BatchClaimRepo implementación del token de idempotencia sobre PostgreSQL.
type BatchClaimRepo struct {
	q Querier
}

// NewBatchClaimRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchClaimRepository(q Querier) *BatchClaimRepo {
	return &BatchClaimRepo{q: q}
}

// Insert intenta reclamar (warehouse_id, batch_reference). Usa ON CONFLICT DO
// NOTHING en vez de dejar fallar el insert: una violación única cruda abortaría
// la transacción entera y el caller ya no podría reportar el duplicado como
// no-op exitoso. Cero filas afectadas significa que otro request ganó la
// referencia primero.
func (r *BatchClaimRepo) Insert(claim *entity.BatchClaim) error {
	if claim.ID == "" {
		claim.ID = uuid.New().String()
	}
	query := `
		INSERT INTO putaway_batch_claims (id, warehouse_id, batch_reference, fingerprint, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (warehouse_id, batch_reference) DO NOTHING`
	createdBy := (*string)(nil)
	if claim.CreatedBy != "" {
		createdBy = &claim.CreatedBy
	}
	tag, err := r.q.Exec(context.Background(), query,
		claim.ID, claim.WarehouseID, claim.BatchReference, claim.Fingerprint,
		createdBy, claim.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch claim: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}
