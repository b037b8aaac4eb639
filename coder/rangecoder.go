package coder

import (
	"fmt"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"

	"github.com/adder-codec/core/codecerr"
)

// rcTopValue is the renormalization threshold: whenever rng falls below it,
// a byte of precision has been spent and must be shifted out.
const rcTopValue = 1 << 24

// rangeEncoder is a binary-output range coder parameterized by cumulative
// frequencies supplied by the caller (the Fenwick model, via contextRegistry).
//
// Grounded structurally on the corpus's RFC 6716 range coder
// (other_examples' thesyncim-gopus rangecoding package): explicit
// rng/low state, a buffered pending byte plus carry-run counter instead of
// a carryless renormalization trick, and byte-at-a-time output through a
// bitsink. The carry-propagation shape (one cached byte, a run-length of
// bytes withheld pending carry resolution) is the same idea as that
// package's rem/ext fields, expressed with a 64-bit low register.
type rangeEncoder struct {
	w         bitio.Writer
	low       uint64
	rng       uint32
	cache     byte
	cacheSize uint64
}

func newRangeEncoder(w bitio.Writer) *rangeEncoder {
	return &rangeEncoder{w: w, rng: 0xFFFFFFFF, cacheSize: 1}
}

func (e *rangeEncoder) shiftLow() error {
	if uint32(e.low>>32) != 0 || e.low < 0xFF000000 {
		temp := e.cache
		for {
			if err := e.w.WriteByte(temp + byte(e.low>>32)); err != nil {
				return errutil.Err(err)
			}
			temp = 0xFF
			e.cacheSize--
			if e.cacheSize == 0 {
				break
			}
		}
		e.cache = byte(e.low >> 24)
	}
	e.cacheSize++
	e.low = (e.low << 8) & 0xFFFFFFFF
	return nil
}

// encode narrows the coder's range to [fl,fh) out of a total of ft, then
// renormalizes, shifting out whole bytes as the range shrinks.
func (e *rangeEncoder) encode(fl, fh, ft uint32) error {
	r := e.rng / ft
	e.low += uint64(fl) * uint64(r)
	e.rng = r * (fh - fl)
	for e.rng < rcTopValue {
		e.rng <<= 8
		if err := e.shiftLow(); err != nil {
			return err
		}
	}
	return nil
}

// flush drains the 5 bytes of pending state needed for the decoder to prime
// its code register unambiguously.
func (e *rangeEncoder) flush() error {
	for i := 0; i < 5; i++ {
		if err := e.shiftLow(); err != nil {
			return err
		}
	}
	return nil
}

func (e *rangeEncoder) close() error {
	return e.w.Close()
}

// rangeDecoder is the inverse of rangeEncoder.
type rangeDecoder struct {
	r    bitio.Reader
	code uint32
	rng  uint32
	tmp  uint32
}

func newRangeDecoder(r bitio.Reader) (*rangeDecoder, error) {
	d := &rangeDecoder{r: r, rng: 0xFFFFFFFF}
	for i := 0; i < 5; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			return nil, joinUnexpectedEOF(err)
		}
		d.code = (d.code << 8) | uint32(b)
	}
	return d, nil
}

// getFreq returns the cumulative-frequency value the caller should look up
// in the Fenwick model (fenwickTree.find) to recover the decoded symbol.
// The caller must follow up with decodeUpdate using that symbol's [fl,fh).
func (d *rangeDecoder) getFreq(ft uint32) uint32 {
	d.tmp = d.rng / ft
	v := d.code / d.tmp
	if v >= ft {
		v = ft - 1
	}
	return v
}

func (d *rangeDecoder) decodeUpdate(fl, fh, ft uint32) error {
	d.code -= fl * d.tmp
	d.rng = d.tmp * (fh - fl)
	for d.rng < rcTopValue {
		b, err := d.r.ReadByte()
		if err != nil {
			return joinUnexpectedEOF(err)
		}
		d.code = (d.code << 8) | uint32(b)
		d.rng <<= 8
	}
	return nil
}

func joinUnexpectedEOF(err error) error {
	return fmt.Errorf("%w: %v", codecerr.ErrUnexpectedEOF, err)
}
