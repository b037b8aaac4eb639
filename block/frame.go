package block

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/adder-codec/core/adutype"
	"github.com/adder-codec/core/codecerr"
)

// coordKey packs an event's pixel position into a lookup key for the
// cube/block index cache, spec.md §4.6 step 2.
type coordKey struct {
	x, y uint16
}

type coordLoc struct {
	cubeIdx, blockIdx int
}

// Frame aggregates an incoming event stream into a grid of Cubes, one per
// 16x16 pixel tile, across the plane described by its PlaneSize. A Frame
// is created for one ADU and reset (or discarded) once that ADU is
// emitted, per spec.md §3's Lifecycle.
type Frame struct {
	PlaneSize adutype.PlaneSize

	cubes     []*Cube
	cubeWidth int

	coordCache map[coordKey]coordLoc

	Debug bool
	log   *log.Logger
}

// NewFrame allocates a Frame spanning size, with no cubes yet populated
// (cubes are created lazily, on first event, the way the teacher's
// encoder allocates subframes lazily per block rather than up front).
func NewFrame(size adutype.PlaneSize) *Frame {
	return &Frame{
		PlaneSize:  size,
		cubeWidth:  size.CubeWidth(),
		coordCache: make(map[coordKey]coordLoc),
		log:        log.NewWithOptions(os.Stderr, log.Options{Prefix: "frame", Level: log.DebugLevel}),
	}
}

func (f *Frame) trace(format string, args ...interface{}) {
	if f.Debug {
		f.log.Debug(fmt.Sprintf(format, args...))
	}
}

// Cube returns the cube at the given cube-grid index, allocating it (and
// any earlier missing cubes are never allocated implicitly — only the
// requested one) if it does not yet exist.
func (f *Frame) Cube(cubeIdx int) *Cube {
	for len(f.cubes) <= cubeIdx {
		f.cubes = append(f.cubes, nil)
	}
	if f.cubes[cubeIdx] == nil {
		idxY := uint8(cubeIdx / f.cubeWidth)
		idxX := uint8(cubeIdx % f.cubeWidth)
		f.cubes[cubeIdx] = NewCube(idxY, idxX)
	}
	return f.cubes[cubeIdx]
}

// Cubes returns every allocated cube in grid order, including nil holes
// for cube-grid positions no event has ever touched.
func (f *Frame) Cubes() []*Cube {
	return f.cubes
}

// Lookup returns the (cubeIdx, blockIdx) a previously added event at
// (x,y) was routed to, and whether such an event has been added.
func (f *Frame) Lookup(x, y uint16) (cubeIdx, blockIdx int, ok bool) {
	loc, ok := f.coordCache[coordKey{x, y}]
	return loc.cubeIdx, loc.blockIdx, ok
}

// AddEvent ingests e, per spec.md §4.6:
//  1. compute cube_idx and block_idx from e's pixel position;
//  2. cache the (cube_idx, block_idx) pair for this coordinate;
//  3. route to the cube's per-channel SetEvent (2D events route to R);
//  4-5. append a block if needed, write the event, and advance the
//     position's depth.
func (f *Frame) AddEvent(e adutype.Event) error {
	cubeIdx := int(e.Coord.Y/adutype.BlockSize)*f.cubeWidth + int(e.Coord.X/adutype.BlockSize)
	blockIdx := int(e.Coord.Y%adutype.BlockSize)*adutype.BlockSize + int(e.Coord.X%adutype.BlockSize)

	if cubeIdx < 0 || cubeIdx >= f.PlaneSize.NumCubes() {
		return codecerr.ErrInvalidInput
	}

	f.coordCache[coordKey{e.Coord.X, e.Coord.Y}] = coordLoc{cubeIdx, blockIdx}

	ch := channelFromCoord(e.Coord)
	cube := f.Cube(cubeIdx)
	f.trace("add_event cube=%d block=%d ch=%d", cubeIdx, blockIdx, ch)
	if err := cube.SetEvent(ch, blockIdx, e.Coordless()); err != nil {
		return err
	}
	return nil
}

// ShouldFlush reports whether the frame has allocated at least
// maxCubesInFlight cubes, i.e. enough to warrant emitting an ADU now. spec.md §3 leaves this flush
// condition to the caller; this is the externally supplied policy this
// codec core ships, mirroring the teacher's block-size-driven subframe
// flush.
func (f *Frame) ShouldFlush(maxCubesInFlight int) bool {
	count := 0
	for _, c := range f.cubes {
		if c != nil {
			count++
		}
	}
	return count >= maxCubesInFlight
}

// Reset recycles the Frame's cube and coordinate-cache storage so it can
// aggregate the next ADU's events, mirroring how the teacher's Encoder
// resets its StreamInfo bookkeeping between encode sessions.
func (f *Frame) Reset() {
	f.cubes = nil
	for k := range f.coordCache {
		delete(f.coordCache, k)
	}
}
