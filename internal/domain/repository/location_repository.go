package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// LocationFilter filtros de listado de ubicaciones.
type LocationFilter struct {
	WarehouseID string
	Type        entity.LocationType
	Subtype     entity.LocationSubtype
	Status      string
	Limit       int
	Offset      int
}

// LocationRepository define el puerto del registro de ubicaciones. Los motores
// del kardex solo lo leen y bloquean; las escrituras son administrativas.
type LocationRepository interface {
	Create(location *entity.Location) error
	// GetByID devuelve domain.ErrNotFound si no existe; nunca (nil, nil).
	GetByID(id string) (*entity.Location, error)
	// ListByIDs devuelve las ubicaciones existentes entre los ids pedidos
	// (los ids desconocidos simplemente no aparecen en el resultado).
	ListByIDs(ids []string) ([]*entity.Location, error)
	// GetVirtual resuelve el bin virtual de un subtipo en la bodega.
	// Devuelve domain.ErrNotFound si la bodega no lo tiene provisionado.
	GetVirtual(warehouseID string, subtype entity.LocationSubtype) (*entity.Location, error)
	List(filter LocationFilter) ([]*entity.Location, error)
	UpdateStatus(id, status string) error
	// LockByIDs bloquea las filas de ubicación (SELECT FOR UPDATE) en orden
	// estable por id, para serializar check-then-act concurrentes sobre los
	// mismos bins sin riesgo de deadlock cruzado.
	LockByIDs(ids []string) error
}
