package warehousing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/warehousing"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

const locWarehouse = "wh-ubicaciones"

func newLocationFixture() (*fakeState, *warehousing.LocationUseCase) {
	s := newFakeState()
	s.addWarehouse(locWarehouse)
	uc := warehousing.NewLocationUseCase(
		&fakeWarehouseRepo{s: s},
		&fakeLocationRepo{s: s},
		&fakeLedgerRepo{s: s},
	)
	return s, uc
}

func TestLocation_CreatePhysicalAsumeStorage(t *testing.T) {
	_, uc := newLocationFixture()

	loc, err := uc.Create(warehousing.CreateLocationInput{
		WarehouseID: locWarehouse,
		Type:        entity.LocationPhysical,
		Code:        " A-03-1 ",
		DisplayName: "Estante A-03 nivel 1",
		Actor:       "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SubtypeStorage, loc.Subtype, "el subtipo físico por defecto es STORAGE")
	assert.Equal(t, "A-03-1", loc.Code)
	assert.False(t, loc.SystemManaged)
	assert.Equal(t, entity.StatusActive, loc.Status)
}

func TestLocation_ValidacionesDeCreate(t *testing.T) {
	_, uc := newLocationFixture()

	cases := []struct {
		name  string
		input warehousing.CreateLocationInput
	}{
		{"PHYSICAL sin código", warehousing.CreateLocationInput{
			WarehouseID: locWarehouse, Type: entity.LocationPhysical, DisplayName: "Sin código",
		}},
		{"PHYSICAL sin nombre", warehousing.CreateLocationInput{
			WarehouseID: locWarehouse, Type: entity.LocationPhysical, Code: "B-01",
		}},
		{"PHYSICAL con subtipo de bin", warehousing.CreateLocationInput{
			WarehouseID: locWarehouse, Type: entity.LocationPhysical,
			Code: "B-02", DisplayName: "Estante B-02", Subtype: entity.SubtypeQC,
		}},
		{"VIRTUAL sin subtipo", warehousing.CreateLocationInput{
			WarehouseID: locWarehouse, Type: entity.LocationVirtual,
		}},
		{"VIRTUAL con STORAGE", warehousing.CreateLocationInput{
			WarehouseID: locWarehouse, Type: entity.LocationVirtual, Subtype: entity.SubtypeStorage,
		}},
		{"tipo desconocido", warehousing.CreateLocationInput{
			WarehouseID: locWarehouse, Type: "MIXTA", Code: "C-01", DisplayName: "Rara",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLocation_CreateEnBodegaInexistente(t *testing.T) {
	_, uc := newLocationFixture()

	_, err := uc.Create(warehousing.CreateLocationInput{
		WarehouseID: "no-existe",
		Type:        entity.LocationPhysical,
		Code:        "A-01",
		DisplayName: "Estante A-01",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocation_CodigoDuplicadoEnBodega(t *testing.T) {
	_, uc := newLocationFixture()

	input := warehousing.CreateLocationInput{
		WarehouseID: locWarehouse,
		Type:        entity.LocationPhysical,
		Code:        "A-05-1",
		DisplayName: "Estante A-05 nivel 1",
	}
	_, err := uc.Create(input)
	require.NoError(t, err)

	_, err = uc.Create(input)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLocation_UpdateStatus(t *testing.T) {
	s, uc := newLocationFixture()
	loc := s.addPhysical(locWarehouse, "A-09")

	require.NoError(t, uc.UpdateStatus(loc.ID, entity.StatusInactive))
	assert.Equal(t, entity.StatusInactive, s.locations[loc.ID].Status)

	require.NoError(t, uc.UpdateStatus(loc.ID, entity.StatusActive))
	assert.Equal(t, entity.StatusActive, s.locations[loc.ID].Status)

	err := uc.UpdateStatus(loc.ID, "SUSPENDIDA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLocation_NoDesactivaConStock(t *testing.T) {
	s, uc := newLocationFixture()
	loc := s.addPhysical(locWarehouse, "A-10")
	s.seedStock(locWarehouse, loc.ID, "sku-1", qty(5))

	err := uc.UpdateStatus(loc.ID, entity.StatusInactive)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.StatusActive, s.locations[loc.ID].Status, "la ubicación sigue activa")
}

// Una ubicación cuyos asientos netean a cero para cada ítem está vacía y sí
// puede desactivarse.
func TestLocation_DesactivaConSaldoNetoCero(t *testing.T) {
	s, uc := newLocationFixture()
	loc := s.addPhysical(locWarehouse, "A-11")
	s.seedStock(locWarehouse, loc.ID, "sku-1", qty(5))
	s.seedStock(locWarehouse, loc.ID, "sku-1", qty(-5))

	require.NoError(t, uc.UpdateStatus(loc.ID, entity.StatusInactive))
	assert.Equal(t, entity.StatusInactive, s.locations[loc.ID].Status)
}

func TestLocation_UpdateStatusInexistente(t *testing.T) {
	_, uc := newLocationFixture()

	err := uc.UpdateStatus("no-existe", entity.StatusInactive)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocation_NoTocaBinsDelSistema(t *testing.T) {
	s, uc := newLocationFixture()
	bin := s.virtualBin(locWarehouse, entity.SubtypeQC)

	err := uc.UpdateStatus(bin.ID, entity.StatusInactive)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
