// Package adutype defines the data types shared across the ADU codec core:
// events, plane geometry, and codec configuration options.
package adutype

// Event-level D sentinels (distinct from the block-residual sentinel
// DEncodeNoEvent below, which lives in a different alphabet).
const (
	// DZeroIntegration marks a "zero integration" event: the pixel's
	// integration threshold was crossed with no accumulated intensity.
	DZeroIntegration uint8 = 254
	// DEmpty marks an empty/filler event carrying no information.
	DEmpty uint8 = 255
	// DMax is the largest valid decimation exponent for a real event.
	DMax uint8 = 127
)

// DEncodeNoEvent is the reserved D-residual value meaning "no event
// occupies this position in the block." A real D residual (next.D -
// previous.D) is bounded by [-DMax,+DMax] = [-127,+127], so 255 never
// collides with one; Δt residuals are elided wherever a block's D
// residual equals DEncodeNoEvent (spec invariant). On the wire this value
// is carried as-is (d_context's reserved top symbol); every other D
// residual is zig-zag encoded into d_context's 0..=254 symbol range.
const DEncodeNoEvent int32 = 255

// Coord is the spatial address of an event: a pixel position plus an
// optional channel. Channel is encoded as -1 for "no channel" (2D events),
// matching EventCoordless's implicit omission of coordinate information.
type Coord struct {
	X uint16
	Y uint16
	// C is the channel index (0=R, 1=G, 2=B), or -1 if the event carries no
	// explicit channel (2D events route to channel R).
	C int8
}

// HasChannel reports whether the coordinate carries an explicit channel.
func (c Coord) HasChannel() bool {
	return c.C >= 0
}

// Channel returns the channel this coordinate routes to. 2D events (no
// explicit channel) route to channel 0 (R), per spec.md §4.6 step 3.
func (c Coord) Channel() int {
	if c.C < 0 {
		return 0
	}
	return int(c.C)
}

// Event is a single spatially-indexed ADΔER event.
type Event struct {
	Coord Coord
	// D is the decimation exponent, in [0,DMax], or one of the sentinels
	// DZeroIntegration / DEmpty.
	D uint8
	// DeltaT is ticks since the pixel's prior event. In TimeModeAbsoluteT
	// streams this field instead carries the absolute timestamp; see
	// TimeMode.
	DeltaT uint32
}

// EventCoordless is an Event stripped of its spatial position, used inside
// blocks where position is implied by array index.
type EventCoordless struct {
	D      uint8
	DeltaT uint32
}

// Coordless strips the coordinate from e, keeping D and DeltaT.
func (e Event) Coordless() EventCoordless {
	return EventCoordless{D: e.D, DeltaT: e.DeltaT}
}
