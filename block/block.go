// Package block implements the codec core's Block/Cube/Frame aggregator:
// the spatial-temporal grouping of incoming events into per-channel cubes
// of blocks, ahead of residual coding.
//
// Grounded on the teacher's frame/subframe hierarchy (enc_frame.go,
// enc_subframe.go): a growing ordered sequence of fixed-size units, each
// tracked by index, with a per-position map recording where the next
// write for that position lands.
package block

import (
	"github.com/adder-codec/core/adutype"
	"github.com/adder-codec/core/codecerr"
)

// ShiftLoss is spec.md's shift_loss_param: the right-shift an upstream
// compression decision applied to a block's Δt-residual magnitudes before
// they were written into IntraBlock/InterBlock.DtResiduals (spec.md §3,
// [0,255]). It is carried through the ADU serializer as opaque metadata,
// not re-applied there: spec.md §8 boundary scenario 3 requires an
// IntraBlock/InterBlock's fields to round-trip byte-for-byte through
// Encoder/Decoder exactly as given, which only holds if the serializer
// treats DtResiduals as already being in its final, already-shifted form
// and never shifts it again. See DESIGN.md's Open Question decision on
// shift_loss_param.
type ShiftLoss uint8

// Block holds BLOCK_SIZE_AREA optional events in row-major order within a
// 16×16 pixel tile, plus the count of occupied slots.
type Block struct {
	Events    [adutype.BlockSizeArea]*adutype.EventCoordless
	FillCount int
}

func newBlock() *Block {
	return &Block{}
}

// Set writes e into position idx, per spec.md §4.6 step 4. It fails with
// ErrAlreadyExists if idx is already occupied — callers are expected never
// to trigger this under correct use.
func (b *Block) Set(idx int, e adutype.EventCoordless) error {
	if idx < 0 || idx >= adutype.BlockSizeArea {
		return codecerr.ErrInvalidInput
	}
	if b.Events[idx] != nil {
		return codecerr.ErrAlreadyExists
	}
	ev := e
	b.Events[idx] = &ev
	b.FillCount++
	return nil
}
