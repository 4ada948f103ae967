package warehousing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/warehousing"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

func TestPostEntries_ParConservaCantidad(t *testing.T) {
	s := newFakeState()
	ledgerRepo := &fakeLedgerRepo{s: s}

	rows, err := warehousing.PostEntries(ledgerRepo, warehousing.PostInput{
		WarehouseID:    "w1",
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
		ItemID:         "sku-1",
		Qty:            decimal.NewFromInt(5),
		MovementType:   entity.MovementTransfer,
		RefModel:       entity.RefModelInternalMove,
		RefID:          "ref-1",
		Memo:           "test",
		Actor:          "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, rows, "un traslado completo debe escribir dos asientos")

	require.Len(t, s.entries, 2)
	debit, credit := s.entries[0], s.entries[1]
	assert.True(t, debit.QtyDelta.Equal(decimal.NewFromInt(-5)), "el origen debe recibir el delta negativo")
	assert.True(t, credit.QtyDelta.Equal(decimal.NewFromInt(5)), "el destino debe recibir el delta positivo")
	assert.True(t, debit.QtyDelta.Add(credit.QtyDelta).IsZero(), "el par debe sumar cero")

	// Ambos asientos comparten referencia, tipo y timestamp.
	assert.Equal(t, debit.RefModel, credit.RefModel)
	assert.Equal(t, debit.RefID, credit.RefID)
	assert.Equal(t, debit.MovementType, credit.MovementType)
	assert.Equal(t, debit.CreatedAt, credit.CreatedAt, "el par debe compartir timestamp")
}

func TestPostEntries_CreditoUnilateral(t *testing.T) {
	s := newFakeState()
	ledgerRepo := &fakeLedgerRepo{s: s}

	rows, err := warehousing.PostEntries(ledgerRepo, warehousing.PostInput{
		WarehouseID:  "w1",
		ToLocationID: "bin-excess",
		ItemID:       "sku-1",
		Qty:          decimal.NewFromInt(3),
		MovementType: entity.MovementAdjRequestExcess,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, rows, "un crédito sin origen escribe un solo asiento")
	require.Len(t, s.entries, 1)
	assert.True(t, s.entries[0].QtyDelta.Equal(decimal.NewFromInt(3)))
}

func TestPostEntries_CantidadInvalida(t *testing.T) {
	s := newFakeState()
	ledgerRepo := &fakeLedgerRepo{s: s}

	for _, qty := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1)} {
		_, err := warehousing.PostEntries(ledgerRepo, warehousing.PostInput{
			WarehouseID:    "w1",
			FromLocationID: "a",
			ToLocationID:   "b",
			ItemID:         "sku-1",
			Qty:            qty,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "qty %s debe rechazarse", qty)
	}
	assert.Empty(t, s.entries, "no debe escribirse ningún asiento")
}

func TestPostEntries_SinExtremos(t *testing.T) {
	s := newFakeState()
	ledgerRepo := &fakeLedgerRepo{s: s}

	_, err := warehousing.PostEntries(ledgerRepo, warehousing.PostInput{
		WarehouseID: "w1",
		ItemID:      "sku-1",
		Qty:         decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidEndpoints, "sin origen ni destino debe rechazarse")
	assert.Empty(t, s.entries)
}
