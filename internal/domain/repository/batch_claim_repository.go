package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// BatchClaimRepository define el puerto del token de idempotencia de lotes.
type BatchClaimRepository interface {
	// Insert intenta reclamar (warehouse_id, batch_reference). Devuelve
	// domain.ErrDuplicate si otro request ya reclamó esa referencia; la
	// restricción única de la base es la que serializa, sin lock distribuido.
	Insert(claim *entity.BatchClaim) error
}
