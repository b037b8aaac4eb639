package block

import (
	"github.com/adder-codec/core/adutype"
	"github.com/adder-codec/core/codecerr"
)

// channel names the three color planes events route to; 2D events (no
// Coord.C) route to channel 0 (R), per spec.md §4.6 step 3.
type channel int

const (
	channelR channel = iota
	channelG
	channelB
	numChannels
)

// Cube is a single pixel tile across all its temporal depths: per channel,
// a growing ordered sequence of Blocks plus a block_idx_map recording,
// for each in-tile position, which block slot the next arriving event at
// that position belongs to.
type Cube struct {
	IdxY, IdxX uint8

	blocks      [numChannels][]*Block
	blockIdxMap [numChannels][adutype.BlockSizeArea]int
}

// NewCube returns a Cube positioned at (idxY, idxX) in the cube grid, with
// no blocks yet allocated in any channel.
func NewCube(idxY, idxX uint8) *Cube {
	return &Cube{IdxY: idxY, IdxX: idxX}
}

// Blocks returns channel ch's block sequence; index 0 is the intra-coded
// reference, the rest are inter-coded (spec.md §3).
func (c *Cube) Blocks(ch int) []*Block {
	return c.blocks[ch]
}

// SetEvent writes e into channel ch at in-tile position blockIdx, per
// spec.md §4.6 steps 4-5: it appends a new Block to the channel if the
// position's current depth has run off the end of the channel's block
// sequence, then writes into that block and advances the position's depth.
func (c *Cube) SetEvent(ch int, blockIdx int, e adutype.EventCoordless) error {
	if ch < 0 || ch >= int(numChannels) {
		return codecerr.ErrInvalidInput
	}
	if blockIdx < 0 || blockIdx >= adutype.BlockSizeArea {
		return codecerr.ErrInvalidInput
	}
	depth := c.blockIdxMap[ch][blockIdx]
	if depth >= len(c.blocks[ch]) {
		c.blocks[ch] = append(c.blocks[ch], newBlock())
	}
	if err := c.blocks[ch][depth].Set(blockIdx, e); err != nil {
		return err
	}
	c.blockIdxMap[ch][blockIdx]++
	return nil
}

// Depth returns the current block_idx_map depth at (ch, blockIdx): the
// number of events already routed to that position.
func (c *Cube) Depth(ch int, blockIdx int) int {
	return c.blockIdxMap[ch][blockIdx]
}

func channelFromCoord(coord adutype.Coord) int {
	if !coord.HasChannel() {
		return int(channelR)
	}
	return int(coord.Channel())
}
