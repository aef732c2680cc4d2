package gcode

// Command is the value produced for a supported instruction.
//
// The fields mirror the parameters of a linear move. They are not filled
// from the parameter tokens: every supported line yields a zero-valued
// Command.
type Command struct {
	// X is the target X coordinate (Xnnn).
	X *float64

	// Y is the target Y coordinate (Ynnn).
	Y *float64

	// Z is the target Z coordinate (Znnn).
	Z *float64

	// Extrude is the amount of filament to extrude (Ennn).
	Extrude *float64

	// FeedRate is the feed rate per minute (Fnnn).
	FeedRate *float64

	// LaserPower is the laser or fan power.
	LaserPower *float64
}
