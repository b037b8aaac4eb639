// Package core implements the compressed-ADU codec: the Adu/AduChannel/
// AduCube/IntraBlock/InterBlock wire types, and the Encoder/Decoder that
// drive them through a coder.Coder.
//
// Grounded on the teacher's enc_frame.go/frame/frame.go per-frame
// encode/decode loop: a header-then-body pattern threading a shared
// coder, with a checksum footer closing out each self-contained unit.
package core

import (
	"github.com/adder-codec/core/adutype"
	"github.com/adder-codec/core/block"
)

// IntraBlock is the on-wire form of a cube's first (self-referential)
// block: every residual is relative to an explicit head event.
type IntraBlock struct {
	HeadEventD     uint8
	HeadEventT     uint32
	ShiftLossParam block.ShiftLoss
	DResiduals     [adutype.BlockSizeArea]int16
	DtResiduals    [adutype.BlockSizeArea]int16
}

// InterBlock is the on-wire form of a cube's non-first blocks: residuals
// are relative to the immediately previous block in the same cube slot
// (see DESIGN.md's Open Question decision on inter-block prediction).
type InterBlock struct {
	ShiftLossParam block.ShiftLoss
	DResiduals     [adutype.BlockSizeArea]int16
	DtResiduals    [adutype.BlockSizeArea]int16
}

// AduCube is one cube's worth of coded blocks for a single channel.
type AduCube struct {
	IdxY, IdxX     uint8
	IntraBlock     IntraBlock
	InterBlocks    []InterBlock
}

// AduChannel is one color channel's worth of coded cubes.
type AduChannel struct {
	Cubes []AduCube
}

// Adu is one self-contained Access Decodable Unit: a head timestamp plus
// the three color channels.
type Adu struct {
	HeadEventT uint32
	ChannelR   AduChannel
	ChannelG   AduChannel
	ChannelB   AduChannel
}

// channelByIndex returns a pointer to the requested channel (0=R,1=G,2=B)
// so Encoder/Decoder can loop { R, G, B } uniformly.
func (a *Adu) channelByIndex(i int) *AduChannel {
	switch i {
	case 0:
		return &a.ChannelR
	case 1:
		return &a.ChannelG
	default:
		return &a.ChannelB
	}
}
