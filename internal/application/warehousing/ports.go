package warehousing

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// Repos conjunto de repositorios atados a una misma transacción de BD.
type Repos struct {
	Ledger      repository.LedgerRepository
	Locations   repository.LocationRepository
	Claims      repository.BatchClaimRepository
	Adjustments repository.AdjustmentRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Commit si fn devuelve nil, Rollback ante cualquier error:
// es la garantía de todo-o-nada de los motores compuestos del kardex.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
