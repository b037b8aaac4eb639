package block

import (
	"testing"

	"github.com/adder-codec/core/adutype"
	"github.com/adder-codec/core/codecerr"
)

func TestBlockSetAndFillCount(t *testing.T) {
	b := newBlock()
	if err := b.Set(10, adutype.EventCoordless{D: 1, DeltaT: 5}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if b.FillCount != 1 {
		t.Fatalf("FillCount = %d, want 1", b.FillCount)
	}
	if b.Events[10] == nil || b.Events[10].D != 1 {
		t.Fatalf("Events[10] = %+v, want D=1", b.Events[10])
	}
}

func TestBlockSetAlreadyExists(t *testing.T) {
	b := newBlock()
	if err := b.Set(3, adutype.EventCoordless{D: 0, DeltaT: 0}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Set(3, adutype.EventCoordless{D: 1, DeltaT: 1}); err == nil {
		t.Fatalf("second Set at same index: want error, got nil")
	} else if err != codecerr.ErrAlreadyExists {
		t.Fatalf("second Set error = %v, want %v", err, codecerr.ErrAlreadyExists)
	}
}

func TestCubeSetEventAppendsBlocksOnDepthOverflow(t *testing.T) {
	c := NewCube(0, 0)
	for i := 0; i < 3; i++ {
		if err := c.SetEvent(int(channelR), 0, adutype.EventCoordless{D: uint8(i), DeltaT: uint32(i)}); err != nil {
			t.Fatalf("SetEvent[%d]: %v", i, err)
		}
	}
	if got := len(c.Blocks(int(channelR))); got != 3 {
		t.Fatalf("len(blocks) = %d, want 3", got)
	}
	if got := c.Depth(int(channelR), 0); got != 3 {
		t.Fatalf("Depth = %d, want 3", got)
	}
	for i := 0; i < 3; i++ {
		ev := c.Blocks(int(channelR))[i].Events[0]
		if ev == nil || ev.D != uint8(i) {
			t.Fatalf("block %d position 0 = %+v, want D=%d", i, ev, i)
		}
	}
}

func TestCubeSetEventDistinctPositionsIndependentDepth(t *testing.T) {
	c := NewCube(0, 0)
	if err := c.SetEvent(int(channelR), 0, adutype.EventCoordless{D: 1, DeltaT: 1}); err != nil {
		t.Fatalf("SetEvent: %v", err)
	}
	if err := c.SetEvent(int(channelR), 0, adutype.EventCoordless{D: 2, DeltaT: 2}); err != nil {
		t.Fatalf("SetEvent: %v", err)
	}
	if err := c.SetEvent(int(channelR), 1, adutype.EventCoordless{D: 3, DeltaT: 3}); err != nil {
		t.Fatalf("SetEvent: %v", err)
	}
	if got := c.Depth(int(channelR), 0); got != 2 {
		t.Fatalf("Depth(pos=0) = %d, want 2", got)
	}
	if got := c.Depth(int(channelR), 1); got != 1 {
		t.Fatalf("Depth(pos=1) = %d, want 1", got)
	}
	if got := len(c.Blocks(int(channelR))); got != 2 {
		t.Fatalf("len(blocks) = %d, want 2 (block 1 only needed by position 0)", got)
	}
	if c.Blocks(int(channelR))[0].Events[1] == nil {
		t.Fatalf("block 0 position 1 unset, want filled by the single add there")
	}
	if c.Blocks(int(channelR))[1].Events[1] != nil {
		t.Fatalf("block 1 position 1 should be empty, position 1 never reached depth 2")
	}
}
