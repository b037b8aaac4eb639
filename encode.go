package core

import (
	"encoding/binary"
	"io"

	"github.com/mewkiz/pkg/errutil"
	"github.com/mewkiz/pkg/hashutil/crc8"

	"github.com/adder-codec/core/adutype"
	"github.com/adder-codec/core/coder"
	"github.com/adder-codec/core/internal/bits"
	"github.com/adder-codec/core/predict"
)

// Encoder writes Adus to an underlying byte stream, per spec.md §4.7's
// state machine: S0 head_t -> S1 channel_R -> S2 channel_G -> S3 channel_B
// -> S4 eof -> terminal. Mirrors the teacher's encodeFrame: one header-
// then-body pass per unit, threading a single shared coder, closed out by
// a checksum footer.
type Encoder struct {
	w    io.Writer
	opts adutype.Options
}

// NewEncoder returns an Encoder that writes ADUs to w under opts.
func NewEncoder(w io.Writer, opts adutype.Options) (*Encoder, error) {
	opts, err := adutype.NewOptions(opts)
	if err != nil {
		return nil, errutil.Err(err)
	}
	return &Encoder{w: w, opts: opts}, nil
}

// EncodeAdu writes one complete, self-contained ADU: the coded body
// through a fresh coder.Coder, followed by a raw CRC-8 footer over the
// coded bytes so an outer transport can verify ADU integrity without
// decoding it. Grounded directly on the teacher's encodeFrameHeader
// (enc_frame.go): a CRC-8/ATM hash.Hash fed every byte written via
// io.MultiWriter, summed once the body is flushed.
func (enc *Encoder) EncodeAdu(adu Adu) error {
	h := crc8.NewATM()
	mw := io.MultiWriter(h, enc.w)
	c, err := coder.NewEncoder(mw, enc.opts.DeltaTMax)
	if err != nil {
		return errutil.Err(err)
	}

	if err := encodeU32(c, adu.HeadEventT); err != nil {
		return errutil.Err(err)
	}
	for i := 0; i < 3; i++ {
		if err := enc.encodeChannel(c, *adu.channelByIndex(i)); err != nil {
			return errutil.Err(err)
		}
	}
	if err := c.EncodeEOF(); err != nil {
		return errutil.Err(err)
	}
	if err := c.Flush(); err != nil {
		return errutil.Err(err)
	}

	if _, err := enc.w.Write([]byte{h.Sum8()}); err != nil {
		return errutil.Err(wrapWriteFailure(err))
	}
	return nil
}

func (enc *Encoder) encodeChannel(c *coder.Coder, ch AduChannel) error {
	if err := encodeU16(c, uint16(len(ch.Cubes))); err != nil {
		return err
	}
	for _, cube := range ch.Cubes {
		if err := enc.encodeCube(c, cube); err != nil {
			return err
		}
	}
	return nil
}

func (enc *Encoder) encodeCube(c *coder.Coder, cube AduCube) error {
	if err := c.EncodeSymbol(coder.ContextU8General, uint32(cube.IdxY)); err != nil {
		return err
	}
	if err := c.EncodeSymbol(coder.ContextU8General, uint32(cube.IdxX)); err != nil {
		return err
	}
	if err := enc.encodeIntraBlock(c, cube.IntraBlock); err != nil {
		return err
	}
	if err := encodeU16(c, uint16(len(cube.InterBlocks))); err != nil {
		return err
	}
	for _, ib := range cube.InterBlocks {
		if err := enc.encodeInterBlock(c, ib); err != nil {
			return err
		}
	}
	return nil
}

func (enc *Encoder) encodeIntraBlock(c *coder.Coder, b IntraBlock) error {
	if err := c.EncodeSymbol(coder.ContextU8General, uint32(b.HeadEventD)); err != nil {
		return err
	}
	if err := encodeU32(c, b.HeadEventT); err != nil {
		return err
	}
	if err := c.EncodeSymbol(coder.ContextU8General, uint32(b.ShiftLossParam)); err != nil {
		return err
	}
	return enc.encodeResiduals(c, b.DResiduals, b.DtResiduals)
}

func (enc *Encoder) encodeInterBlock(c *coder.Coder, b InterBlock) error {
	if err := c.EncodeSymbol(coder.ContextU8General, uint32(b.ShiftLossParam)); err != nil {
		return err
	}
	return enc.encodeResiduals(c, b.DResiduals, b.DtResiduals)
}

// encodeResiduals writes the 256 D residuals via d_context, then writes a
// Δt residual via dt_context for every position whose D residual is not
// DEncodeNoEvent (spec.md §4.7 IntraBlock/InterBlock encode steps 3-4).
func (enc *Encoder) encodeResiduals(c *coder.Coder, dResid, dtResid [adutype.BlockSizeArea]int16) error {
	for i := 0; i < adutype.BlockSizeArea; i++ {
		sym, err := dResidualSymbol(dResid[i])
		if err != nil {
			return err
		}
		if err := c.EncodeSymbol(coder.ContextD, sym); err != nil {
			return err
		}
	}
	for i := 0; i < adutype.BlockSizeArea; i++ {
		if int32(dResid[i]) == adutype.DEncodeNoEvent {
			continue
		}
		sym, err := predict.Offset(int64(dtResid[i]), enc.opts.DeltaTMax)
		if err != nil {
			return errutil.Err(err)
		}
		if err := c.EncodeSymbol(coder.ContextDt, sym); err != nil {
			return err
		}
	}
	return nil
}

// dResidualSymbol maps a signed D residual to its d_context symbol: the
// DEncodeNoEvent sentinel passes through as-is, everything else is
// zig-zag encoded into the 0..=254 range.
func dResidualSymbol(d int16) (uint32, error) {
	if int32(d) == adutype.DEncodeNoEvent {
		return uint32(adutype.DEncodeNoEvent), nil
	}
	if d < -int16(adutype.DMax) || d > int16(adutype.DMax) {
		return 0, errutil.Newf("adu: D residual %d outside [-%d,+%d]", d, adutype.DMax, adutype.DMax)
	}
	return bits.EncodeZigZag(int32(d)), nil
}

func encodeU32(c *coder.Coder, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	for _, b := range buf {
		if err := c.EncodeSymbol(coder.ContextU8General, uint32(b)); err != nil {
			return err
		}
	}
	return nil
}

func encodeU16(c *coder.Coder, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	for _, b := range buf {
		if err := c.EncodeSymbol(coder.ContextU8General, uint32(b)); err != nil {
			return err
		}
	}
	return nil
}
