package entity

import "time"

// LocationType tipo de ubicación: física (estantería real) o virtual (bin de flujo).
type LocationType string

const (
	LocationPhysical LocationType = "PHYSICAL"
	LocationVirtual  LocationType = "VIRTUAL"
)

// LocationSubtype subtipo de ubicación. STORAGE es el único subtipo físico;
// el resto son bins virtuales usados como etapas de flujo (nunca almacenan de verdad).
type LocationSubtype string

const (
	SubtypeStorage LocationSubtype = "STORAGE"

	SubtypeReceive       LocationSubtype = "RECEIVE"
	SubtypeDispatch      LocationSubtype = "DISPATCH"
	SubtypeReturn        LocationSubtype = "RETURN"
	SubtypeQC            LocationSubtype = "QC"
	SubtypeHold          LocationSubtype = "HOLD"
	SubtypeDamage        LocationSubtype = "DAMAGE"
	SubtypeLost          LocationSubtype = "LOST"
	SubtypeExcess        LocationSubtype = "EXCESS"
	SubtypeDamagePending LocationSubtype = "DAMAGE_PENDING"
	SubtypeLostPending   LocationSubtype = "LOST_PENDING"
	SubtypeExcessPending LocationSubtype = "EXCESS_PENDING"
)

// StandardVirtualSubtypes bins virtuales que toda bodega debe tener provisionados.
// El paso de provisión es explícito en la creación de bodegas (no un hook implícito).
var StandardVirtualSubtypes = []LocationSubtype{
	SubtypeReceive,
	SubtypeDispatch,
	SubtypeReturn,
	SubtypeQC,
	SubtypeHold,
	SubtypeDamage,
	SubtypeLost,
	SubtypeExcess,
	SubtypeDamagePending,
	SubtypeLostPending,
	SubtypeExcessPending,
}

// Location representa una ubicación dentro de una bodega. Si es PHYSICAL exige
// code y display name (subtipo STORAGE); si es VIRTUAL exige un subtipo de bin.
type Location struct {
	ID            string
	WarehouseID   string
	Type          LocationType
	Subtype       LocationSubtype
	Code          string
	DisplayName   string
	SystemManaged bool
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedBy     string
}

// IsActive indica si la ubicación admite movimientos.
func (l *Location) IsActive() bool {
	return l.Status == StatusActive
}

// IsPhysical indica si la ubicación es una estantería real.
func (l *Location) IsPhysical() bool {
	return l.Type == LocationPhysical
}

// IsPutawaySource indica si la ubicación puede ser origen de un putaway
// (solo los bins virtuales RETURN y RECEIVE).
func (l *Location) IsPutawaySource() bool {
	return l.Type == LocationVirtual &&
		(l.Subtype == SubtypeReturn || l.Subtype == SubtypeReceive)
}
