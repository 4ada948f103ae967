package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// AdjustmentRepository define el puerto de persistencia de solicitudes de ajuste.
type AdjustmentRepository interface {
	// NextNumber devuelve el siguiente número AR-<año>-<secuencia>, tomado de
	// una secuencia de la base dentro de la transacción del insert dependiente.
	NextNumber() (string, error)
	Create(request *entity.AdjustmentRequest) error
	// GetByID devuelve domain.ErrNotFound si no existe; nunca (nil, nil).
	GetByID(id string) (*entity.AdjustmentRequest, error)
	// GetForUpdate bloquea la fila de la solicitud (SELECT FOR UPDATE) para que
	// cada transición approve/decline/delete sea efectiva a lo sumo una vez.
	// Mismo contrato de no-encontrado que GetByID.
	GetForUpdate(id string) (*entity.AdjustmentRequest, error)
	Update(request *entity.AdjustmentRequest) error
	Delete(id string) error
	List(warehouseID string, status entity.AdjustmentStatus, limit, offset int) ([]*entity.AdjustmentRequest, error)
}
