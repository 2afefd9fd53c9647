package ir

// Zone identifies where a card instance currently lives.
type Zone string

const (
	ZoneLibrary     Zone = "LIBRARY"
	ZoneHand        Zone = "HAND"
	ZoneBattlefield Zone = "BATTLEFIELD"
	ZoneGraveyard   Zone = "GRAVEYARD"
	ZoneExile       Zone = "EXILE"
	// ZoneStack is reserved for a future stack-based resolution mode.
	// The interpreter does not support selecting or moving cards there.
	ZoneStack Zone = "STACK"
)

// Zones lists every zone a player owns, in display order.
var Zones = []Zone{ZoneLibrary, ZoneHand, ZoneBattlefield, ZoneGraveyard, ZoneExile}

// Known returns true for a zone the engine recognizes, including the
// reserved Stack zone.
func (z Zone) Known() bool {
	switch z {
	case ZoneLibrary, ZoneHand, ZoneBattlefield, ZoneGraveyard, ZoneExile, ZoneStack:
		return true
	}
	return false
}

// Supported returns true if the interpreter can select from and move cards
// into the zone.
func (z Zone) Supported() bool {
	return z.Known() && z != ZoneStack
}
