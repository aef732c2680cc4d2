// Package machine models printer state: units, coordinate mode, bed geometry
// and extruder. The validator does not read or change it; an execution layer
// would own a State and update it per supported command.
package machine

// Units is the unit system for coordinates.
type Units uint8

const (
	UnitsMillimeters Units = iota // G21
	UnitsInches                   // G20
)

// String returns the unit name.
func (u Units) String() string {
	switch u {
	case UnitsMillimeters:
		return "mm"
	case UnitsInches:
		return "in"
	default:
		return "unknown"
	}
}

// CoordinateMode selects absolute or relative positioning.
type CoordinateMode uint8

const (
	CoordinatesAbsolute CoordinateMode = iota // G90
	CoordinatesRelative                       // G91
)

// String returns the mode name.
func (m CoordinateMode) String() string {
	switch m {
	case CoordinatesAbsolute:
		return "absolute"
	case CoordinatesRelative:
		return "relative"
	default:
		return "unknown"
	}
}

// Location is a point in machine space. Coordinates may be negative for
// out-of-bounds positions.
type Location struct {
	X, Y, Z float64
}

// Bed holds the print bed geometry. Nil fields are not configured yet.
type Bed struct {
	Origin *Location
	Limit  *Location
}

// Configured returns true once both origin and limit are set.
func (b Bed) Configured() bool {
	return b.Origin != nil && b.Limit != nil
}

// Extruder holds the tool head state.
type Extruder struct {
	// FanEnabled is off at boot.
	FanEnabled bool

	// Temperature in degrees Celsius.
	Temperature float64

	// Position is relative to the bed origin; 0,0,0 at boot.
	Position Location
}

// State aggregates the machine configuration.
type State struct {
	Units       Units
	Coordinates CoordinateMode
	Bed         Bed
	Extruder    Extruder
}

// NewState returns the boot-time state: millimeters, absolute coordinates,
// unconfigured bed, cold extruder at the origin with the fan off.
func NewState() *State {
	return &State{}
}
