package core

import (
	"encoding/binary"
	"io"

	"github.com/mewkiz/pkg/errutil"
	"github.com/mewkiz/pkg/hashutil/crc8"

	"github.com/adder-codec/core/adutype"
	"github.com/adder-codec/core/block"
	"github.com/adder-codec/core/coder"
	"github.com/adder-codec/core/internal/bits"
	"github.com/adder-codec/core/predict"
)

// Decoder reads Adus from an underlying byte stream, the structural
// inverse of Encoder: the same context sequence in the same order, array
// lengths driven by the explicit counters the encoder wrote.
type Decoder struct {
	r    io.Reader
	opts adutype.Options
}

// NewDecoder returns a Decoder that reads ADUs from r under opts.
func NewDecoder(r io.Reader, opts adutype.Options) (*Decoder, error) {
	opts, err := adutype.NewOptions(opts)
	if err != nil {
		return nil, errutil.Err(err)
	}
	return &Decoder{r: r, opts: opts}, nil
}

// DecodeAdu reads and returns one complete ADU, verifying its CRC-8
// footer before returning. Grounded on the teacher's frame.NewHeader
// (frame/header.go): a CRC-8/ATM hash.Hash fed every byte read via
// io.TeeReader, compared against the trailing footer byte once the
// body is fully decoded.
func (dec *Decoder) DecodeAdu() (Adu, error) {
	h := crc8.NewATM()
	tee := io.TeeReader(dec.r, h)
	c, err := coder.NewDecoder(byteReader{tee}, dec.opts.DeltaTMax)
	if err != nil {
		return Adu{}, errutil.Err(err)
	}

	var adu Adu
	headT, err := decodeU32(c)
	if err != nil {
		return Adu{}, errutil.Err(err)
	}
	adu.HeadEventT = headT

	for i := 0; i < 3; i++ {
		ch, err := dec.decodeChannel(c)
		if err != nil {
			return Adu{}, errutil.Err(err)
		}
		*adu.channelByIndex(i) = ch
	}

	isEOF, err := c.DecodeEOF()
	if err != nil {
		return Adu{}, errutil.Err(err)
	}
	if !isEOF {
		return Adu{}, wrapPrematureEOF(errutil.Newf("adu: expected eof sentinel at ADU terminal state"))
	}

	var footer [1]byte
	if _, err := io.ReadFull(dec.r, footer[:]); err != nil {
		return Adu{}, wrapReadFailure(err)
	}
	if want := h.Sum8(); footer[0] != want {
		return Adu{}, wrapCorruptStream(errutil.Newf("adu: CRC-8 mismatch: got %#x, want %#x", footer[0], want))
	}

	return adu, nil
}

// byteReader gives the coder's bitio reader an io.ByteReader that reads one
// byte at a time, so bitio does not wrap it in a read-ahead buffer that
// would consume the CRC-8 footer (and feed it to the hash) with the body.
type byteReader struct{ io.Reader }

func (b byteReader) ReadByte() (byte, error) {
	var p [1]byte
	if _, err := io.ReadFull(b.Reader, p[:]); err != nil {
		return 0, err
	}
	return p[0], nil
}

func (dec *Decoder) decodeChannel(c *coder.Coder) (AduChannel, error) {
	numCubes, err := decodeU16(c)
	if err != nil {
		return AduChannel{}, err
	}
	cubes := make([]AduCube, numCubes)
	for i := range cubes {
		cube, err := dec.decodeCube(c)
		if err != nil {
			return AduChannel{}, err
		}
		cubes[i] = cube
	}
	return AduChannel{Cubes: cubes}, nil
}

func (dec *Decoder) decodeCube(c *coder.Coder) (AduCube, error) {
	idxY, err := c.DecodeSymbol(coder.ContextU8General)
	if err != nil {
		return AduCube{}, err
	}
	idxX, err := c.DecodeSymbol(coder.ContextU8General)
	if err != nil {
		return AduCube{}, err
	}
	intra, err := dec.decodeIntraBlock(c)
	if err != nil {
		return AduCube{}, err
	}
	numInter, err := decodeU16(c)
	if err != nil {
		return AduCube{}, err
	}
	inter := make([]InterBlock, numInter)
	for i := range inter {
		ib, err := dec.decodeInterBlock(c)
		if err != nil {
			return AduCube{}, err
		}
		inter[i] = ib
	}
	return AduCube{
		IdxY:        uint8(idxY),
		IdxX:        uint8(idxX),
		IntraBlock:  intra,
		InterBlocks: inter,
	}, nil
}

func (dec *Decoder) decodeIntraBlock(c *coder.Coder) (IntraBlock, error) {
	headD, err := c.DecodeSymbol(coder.ContextU8General)
	if err != nil {
		return IntraBlock{}, err
	}
	headT, err := decodeU32(c)
	if err != nil {
		return IntraBlock{}, err
	}
	shift, err := c.DecodeSymbol(coder.ContextU8General)
	if err != nil {
		return IntraBlock{}, err
	}
	dResid, dtResid, err := dec.decodeResiduals(c)
	if err != nil {
		return IntraBlock{}, err
	}
	return IntraBlock{
		HeadEventD:     uint8(headD),
		HeadEventT:     headT,
		ShiftLossParam: block.ShiftLoss(shift),
		DResiduals:     dResid,
		DtResiduals:    dtResid,
	}, nil
}

func (dec *Decoder) decodeInterBlock(c *coder.Coder) (InterBlock, error) {
	shift, err := c.DecodeSymbol(coder.ContextU8General)
	if err != nil {
		return InterBlock{}, err
	}
	dResid, dtResid, err := dec.decodeResiduals(c)
	if err != nil {
		return InterBlock{}, err
	}
	return InterBlock{
		ShiftLossParam: block.ShiftLoss(shift),
		DResiduals:     dResid,
		DtResiduals:    dtResid,
	}, nil
}

func (dec *Decoder) decodeResiduals(c *coder.Coder) (dResid, dtResid [adutype.BlockSizeArea]int16, err error) {
	for i := 0; i < adutype.BlockSizeArea; i++ {
		sym, derr := c.DecodeSymbol(coder.ContextD)
		if derr != nil {
			return dResid, dtResid, derr
		}
		d, derr := dResidualFromSymbol(sym)
		if derr != nil {
			return dResid, dtResid, derr
		}
		dResid[i] = d
	}
	for i := 0; i < adutype.BlockSizeArea; i++ {
		if int32(dResid[i]) == adutype.DEncodeNoEvent {
			continue
		}
		sym, derr := c.DecodeSymbol(coder.ContextDt)
		if derr != nil {
			return dResid, dtResid, derr
		}
		r := predict.InverseOffset(sym, dec.opts.DeltaTMax)
		dtResid[i] = int16(r)
	}
	return dResid, dtResid, nil
}

func dResidualFromSymbol(sym uint32) (int16, error) {
	if int32(sym) == adutype.DEncodeNoEvent {
		return int16(adutype.DEncodeNoEvent), nil
	}
	if sym > 254 {
		return 0, wrapCorruptStream(errutil.Newf("adu: d_context symbol %d outside known range", sym))
	}
	return int16(bits.DecodeZigZag(sym)), nil
}

func decodeU32(c *coder.Coder) (uint32, error) {
	var buf [4]byte
	for i := range buf {
		sym, err := c.DecodeSymbol(coder.ContextU8General)
		if err != nil {
			return 0, err
		}
		buf[i] = byte(sym)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

func decodeU16(c *coder.Coder) (uint16, error) {
	var buf [2]byte
	for i := range buf {
		sym, err := c.DecodeSymbol(coder.ContextU8General)
		if err != nil {
			return 0, err
		}
		buf[i] = byte(sym)
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}
