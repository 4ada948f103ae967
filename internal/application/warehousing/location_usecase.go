package warehousing

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// CreateLocationInput entrada del alta administrativa de ubicaciones.
type CreateLocationInput struct {
	WarehouseID string
	Type        entity.LocationType
	Subtype     entity.LocationSubtype
	Code        string
	DisplayName string
	Actor       string
}

// LocationUseCase administra el registro de ubicaciones (el lado de escritura
// que el núcleo del kardex consume como solo-lectura).
type LocationUseCase struct {
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.LocationRepository
	ledgerRepo    repository.LedgerRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	warehouseRepo repository.WarehouseRepository,
	locationRepo repository.LocationRepository,
	ledgerRepo repository.LedgerRepository,
) *LocationUseCase {
	return &LocationUseCase{
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
		ledgerRepo:    ledgerRepo,
	}
}

// Create valida y registra una ubicación. PHYSICAL exige code y display name y
// solo admite subtipo STORAGE (se asume por defecto); VIRTUAL exige un subtipo
// de bin distinto de STORAGE.
func (uc *LocationUseCase) Create(input CreateLocationInput) (*entity.Location, error) {
	if _, err := uc.warehouseRepo.GetByID(input.WarehouseID); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(input.Code)
	displayName := strings.TrimSpace(input.DisplayName)
	subtype := input.Subtype

	switch input.Type {
	case entity.LocationPhysical:
		if displayName == "" {
			return nil, &domain.ValidationError{Field: "display_name", Reason: "requerido para ubicaciones PHYSICAL"}
		}
		if code == "" {
			return nil, &domain.ValidationError{Field: "code", Reason: "requerido para ubicaciones PHYSICAL"}
		}
		if subtype == "" {
			subtype = entity.SubtypeStorage
		}
		if subtype != entity.SubtypeStorage {
			return nil, &domain.ValidationError{Field: "subtype", Reason: "las ubicaciones PHYSICAL solo admiten STORAGE"}
		}
	case entity.LocationVirtual:
		if subtype == "" {
			return nil, &domain.ValidationError{Field: "subtype", Reason: "requerido para ubicaciones VIRTUAL"}
		}
		if subtype == entity.SubtypeStorage {
			return nil, &domain.ValidationError{Field: "subtype", Reason: "las ubicaciones VIRTUAL no admiten STORAGE"}
		}
	default:
		return nil, &domain.ValidationError{Field: "type", Reason: "debe ser PHYSICAL o VIRTUAL"}
	}

	now := time.Now()
	loc := &entity.Location{
		ID:          uuid.New().String(),
		WarehouseID: input.WarehouseID,
		Type:        input.Type,
		Subtype:     subtype,
		Code:        code,
		DisplayName: displayName,
		Status:      entity.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   input.Actor,
	}
	if err := uc.locationRepo.Create(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// List lista ubicaciones con filtros.
func (uc *LocationUseCase) List(filter repository.LocationFilter) ([]*entity.Location, error) {
	return uc.locationRepo.List(filter)
}

// GetByID consulta una ubicación; domain.ErrNotFound si no existe.
func (uc *LocationUseCase) GetByID(id string) (*entity.Location, error) {
	return uc.locationRepo.GetByID(id)
}

// UpdateStatus activa o desactiva una ubicación. No se puede desactivar una
// ubicación con inventario, ni tocar bins gestionados por el sistema.
func (uc *LocationUseCase) UpdateStatus(id, status string) error {
	if status != entity.StatusActive && status != entity.StatusInactive {
		return &domain.ValidationError{Field: "status", Reason: "debe ser ACTIVE o INACTIVE"}
	}
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if loc.SystemManaged {
		return domain.ErrConflict
	}
	if status == entity.StatusInactive {
		hasStock, err := uc.ledgerRepo.HasStock(id)
		if err != nil {
			return err
		}
		if hasStock {
			return domain.ErrConflict
		}
	}
	return uc.locationRepo.UpdateStatus(id, status)
}
