package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

func TestAdjustmentType_MapeoDeBinsYMovimientos(t *testing.T) {
	cases := []struct {
		typ             entity.AdjustmentType
		requiresSource  bool
		pending         entity.LocationSubtype
		terminal        entity.LocationSubtype
		request         entity.MovementType
		approve         entity.MovementType
		decline         entity.MovementType
		declinePostable bool
	}{
		{
			typ:            entity.AdjustmentDamage,
			requiresSource: true,
			pending:        entity.SubtypeDamagePending,
			terminal:       entity.SubtypeDamage,
			request:        entity.MovementAdjRequestDamage,
			approve:        entity.MovementAdjApproveDamage,
			decline:        entity.MovementAdjDeclineDamage, declinePostable: true,
		},
		{
			typ:            entity.AdjustmentLost,
			requiresSource: true,
			pending:        entity.SubtypeLostPending,
			terminal:       entity.SubtypeLost,
			request:        entity.MovementAdjRequestLost,
			approve:        entity.MovementAdjApproveLost,
			decline:        entity.MovementAdjDeclineLost, declinePostable: true,
		},
		{
			// El excedente aprobado no va a un bin EXCESS terminal: entra al
			// flujo de putaway vía RETURN. Declinarlo no postea nada.
			typ:            entity.AdjustmentExcess,
			requiresSource: false,
			pending:        entity.SubtypeExcessPending,
			terminal:       entity.SubtypeReturn,
			request:        entity.MovementAdjRequestExcess,
			approve:        entity.MovementAdjApproveExcess,
			declinePostable: false,
		},
	}
	for _, tc := range cases {
		t.Run(string(tc.typ), func(t *testing.T) {
			assert.Equal(t, tc.requiresSource, tc.typ.RequiresSource())

			pending, ok := tc.typ.PendingSubtype()
			assert.True(t, ok)
			assert.Equal(t, tc.pending, pending)

			terminal, ok := tc.typ.TerminalSubtype()
			assert.True(t, ok)
			assert.Equal(t, tc.terminal, terminal)

			request, ok := tc.typ.RequestMovement()
			assert.True(t, ok)
			assert.Equal(t, tc.request, request)

			approve, ok := tc.typ.ApproveMovement()
			assert.True(t, ok)
			assert.Equal(t, tc.approve, approve)

			decline, ok := tc.typ.DeclineMovement()
			assert.Equal(t, tc.declinePostable, ok)
			assert.Equal(t, tc.decline, decline)
		})
	}
}

func TestAdjustmentType_Desconocido(t *testing.T) {
	unknown := entity.AdjustmentType("ROBO")

	assert.False(t, unknown.RequiresSource())
	_, ok := unknown.PendingSubtype()
	assert.False(t, ok)
	_, ok = unknown.TerminalSubtype()
	assert.False(t, ok)
	_, ok = unknown.RequestMovement()
	assert.False(t, ok)
	_, ok = unknown.ApproveMovement()
	assert.False(t, ok)
	_, ok = unknown.DeclineMovement()
	assert.False(t, ok)
}

func TestLocation_IsPutawaySource(t *testing.T) {
	returnBin := &entity.Location{Type: entity.LocationVirtual, Subtype: entity.SubtypeReturn}
	receiveBin := &entity.Location{Type: entity.LocationVirtual, Subtype: entity.SubtypeReceive}
	qcBin := &entity.Location{Type: entity.LocationVirtual, Subtype: entity.SubtypeQC}
	shelf := &entity.Location{Type: entity.LocationPhysical, Subtype: entity.SubtypeStorage}

	assert.True(t, returnBin.IsPutawaySource())
	assert.True(t, receiveBin.IsPutawaySource())
	assert.False(t, qcBin.IsPutawaySource(), "solo RETURN y RECEIVE alimentan putaway")
	assert.False(t, shelf.IsPutawaySource())
}
