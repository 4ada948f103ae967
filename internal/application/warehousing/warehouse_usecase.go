package warehousing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// CreateWarehouseInput entrada del alta de bodega.
type CreateWarehouseInput struct {
	Code  string
	Name  string
	Actor string
}

// WarehouseUseCase gestiona bodegas y su dotación estándar de bins virtuales.
// La provisión de bins es un paso explícito invocado por el alta, no un hook
// disparado por la persistencia.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.LocationRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository, locationRepo repository.LocationRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo, locationRepo: locationRepo}
}

// Create registra la bodega y provisiona sus bins virtuales estándar.
func (uc *WarehouseUseCase) Create(input CreateWarehouseInput) (*entity.Warehouse, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" {
		return nil, &domain.ValidationError{Field: "code", Reason: "requerido"}
	}
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "requerido"}
	}
	now := time.Now()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: input.Actor,
	}
	if err := uc.warehouseRepo.Create(w); err != nil {
		return nil, err
	}
	if _, err := uc.ProvisionVirtualBins(w.ID, input.Actor); err != nil {
		return nil, err
	}
	return w, nil
}

// ProvisionVirtualBins asegura que la bodega tenga los bins virtuales estándar
// (get-or-create idempotente). Devuelve cuántos se crearon; re-invocable para
// resincronizar bodegas existentes.
func (uc *WarehouseUseCase) ProvisionVirtualBins(warehouseID, actor string) (int, error) {
	if _, err := uc.warehouseRepo.GetByID(warehouseID); err != nil {
		return 0, err
	}
	created := 0
	for _, subtype := range entity.StandardVirtualSubtypes {
		_, err := uc.locationRepo.GetVirtual(warehouseID, subtype)
		if err == nil {
			continue
		}
		if err != domain.ErrNotFound {
			return created, err
		}
		now := time.Now()
		loc := &entity.Location{
			ID:            uuid.New().String(),
			WarehouseID:   warehouseID,
			Type:          entity.LocationVirtual,
			Subtype:       subtype,
			DisplayName:   binDisplayName(subtype),
			SystemManaged: true,
			Status:        entity.StatusActive,
			CreatedAt:     now,
			UpdatedAt:     now,
			CreatedBy:     actor,
		}
		if err := uc.locationRepo.Create(loc); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// GetByID consulta una bodega; domain.ErrNotFound si no existe.
func (uc *WarehouseUseCase) GetByID(id string) (*entity.Warehouse, error) {
	return uc.warehouseRepo.GetByID(id)
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(limit, offset int) ([]*entity.Warehouse, error) {
	return uc.warehouseRepo.List(limit, offset)
}

// VirtualBins lista los bins virtuales de la bodega.
func (uc *WarehouseUseCase) VirtualBins(warehouseID string) ([]*entity.Location, error) {
	return uc.locationRepo.List(repository.LocationFilter{
		WarehouseID: warehouseID,
		Type:        entity.LocationVirtual,
		Limit:       len(entity.StandardVirtualSubtypes) + 1,
	})
}

// binDisplayName "DAMAGE_PENDING" -> "Damage Pending".
func binDisplayName(subtype entity.LocationSubtype) string {
	words := strings.Split(strings.ToLower(string(subtype)), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
