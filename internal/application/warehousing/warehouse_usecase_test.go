package warehousing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/warehousing"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

func newWarehouseUC(s *fakeState) *warehousing.WarehouseUseCase {
	return warehousing.NewWarehouseUseCase(&fakeWarehouseRepo{s: s}, &fakeLocationRepo{s: s})
}

func TestWarehouse_CreateProvisionaBins(t *testing.T) {
	s := newFakeState()
	uc := newWarehouseUC(s)

	w, err := uc.Create(warehousing.CreateWarehouseInput{Code: "  BOD-01  ", Name: "Bodega Central", Actor: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, "BOD-01", w.Code, "el código se persiste sin espacios")
	assert.Equal(t, entity.StatusActive, w.Status)

	bins, err := uc.VirtualBins(w.ID)
	require.NoError(t, err)
	assert.Len(t, bins, len(entity.StandardVirtualSubtypes), "la dotación estándar queda completa")
	for _, bin := range bins {
		assert.True(t, bin.SystemManaged, "los bins provisionados son gestionados por el sistema")
		assert.Equal(t, entity.LocationVirtual, bin.Type)
	}
}

func TestWarehouse_ProvisionEsIdempotente(t *testing.T) {
	s := newFakeState()
	uc := newWarehouseUC(s)

	w, err := uc.Create(warehousing.CreateWarehouseInput{Code: "BOD-02", Name: "Bodega Norte", Actor: "admin-1"})
	require.NoError(t, err)

	created, err := uc.ProvisionVirtualBins(w.ID, "admin-1")
	require.NoError(t, err)
	assert.Zero(t, created, "una bodega completa no recibe bins nuevos")

	bins, err := uc.VirtualBins(w.ID)
	require.NoError(t, err)
	assert.Len(t, bins, len(entity.StandardVirtualSubtypes), "no se duplican bins")
}

// Una bodega a la que le falta un bin (borrado manual, migración vieja) se
// resincroniza recreando solo el faltante.
func TestWarehouse_ProvisionRecuperaFaltantes(t *testing.T) {
	s := newFakeState()
	uc := newWarehouseUC(s)

	s.addWarehouse("wh-parcial")
	lost := s.virtualBin("wh-parcial", entity.SubtypeLost)
	delete(s.locations, lost.ID)

	created, err := uc.ProvisionVirtualBins("wh-parcial", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	recovered := s.virtualBin("wh-parcial", entity.SubtypeLost)
	require.NotNil(t, recovered)
	assert.Equal(t, "Lost", recovered.DisplayName)
}

func TestWarehouse_ValidacionesDeCreate(t *testing.T) {
	s := newFakeState()
	uc := newWarehouseUC(s)

	_, err := uc.Create(warehousing.CreateWarehouseInput{Code: "   ", Name: "Sin código"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(warehousing.CreateWarehouseInput{Code: "BOD-03", Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWarehouse_CodigoDuplicado(t *testing.T) {
	s := newFakeState()
	uc := newWarehouseUC(s)

	_, err := uc.Create(warehousing.CreateWarehouseInput{Code: "BOD-04", Name: "Original"})
	require.NoError(t, err)

	_, err = uc.Create(warehousing.CreateWarehouseInput{Code: "BOD-04", Name: "Repetida"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestWarehouse_GetByIDNoExiste(t *testing.T) {
	s := newFakeState()
	uc := newWarehouseUC(s)

	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ProvisionVirtualBins("no-existe", "admin-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
