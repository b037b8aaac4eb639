// Package coder implements the ADU codec core's entropy coder: a range
// coder layered on an adaptive Fenwick frequency model, addressed through a
// small set of fixed contexts.
//
// Per the source's §9 redesign note, this collapses the original's
// Compressed{Input,Output} + Contexts + FenwickModel cross-reference
// problem into a single Coder struct that owns the coder, the model, and
// the context table as plain fields constructed eagerly — there is no
// "unwrap on Option" state to panic on.
package coder

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
)

// Coder is either an encoder or a decoder instance for one ADU stream. It
// owns the range coder, the context registry, and a debug logger. Exactly
// one of enc and dec is set; ctx and log are never nil after construction.
type Coder struct {
	enc *rangeEncoder
	dec *rangeDecoder
	ctx *contextRegistry

	// Debug gates structured tracing of every symbol encode/decode through
	// a charmbracelet/log logger, mirroring the teacher's dbg.Debug-gated
	// dbg.Println calls. Model rescales are not traced.
	Debug bool
	log   *log.Logger
}

// NewEncoder returns a Coder that writes a range-coded bitstream to w.
func NewEncoder(w io.Writer, deltaTMax uint32) (*Coder, error) {
	reg, err := newContextRegistry(deltaTMax)
	if err != nil {
		return nil, errutil.Err(err)
	}
	bw := bitio.NewWriter(w)
	return &Coder{
		enc: newRangeEncoder(bw),
		ctx: reg,
		log: log.NewWithOptions(os.Stderr, log.Options{Prefix: "coder", Level: log.DebugLevel}),
	}, nil
}

// NewDecoder returns a Coder that reads a range-coded bitstream from r.
func NewDecoder(r io.Reader, deltaTMax uint32) (*Coder, error) {
	reg, err := newContextRegistry(deltaTMax)
	if err != nil {
		return nil, errutil.Err(err)
	}
	br := bitio.NewReader(r)
	dec, err := newRangeDecoder(br)
	if err != nil {
		return nil, errutil.Err(err)
	}
	return &Coder{
		dec: dec,
		ctx: reg,
		log: log.NewWithOptions(os.Stderr, log.Options{Prefix: "coder", Level: log.DebugLevel}),
	}, nil
}

func (c *Coder) trace(format string, args ...interface{}) {
	if c.Debug {
		c.log.Debugf(format, args...)
	}
}

// EncodeSymbol encodes sym under the given context and adaptively updates
// that context's frequency model.
func (c *Coder) EncodeSymbol(ctxID ContextID, sym uint32) error {
	if c.enc == nil {
		return errutil.Newf("coder: EncodeSymbol called on a decoder-only Coder")
	}
	tree, err := c.ctx.tree(ctxID)
	if err != nil {
		return errutil.Err(err)
	}
	if int(sym) >= tree.n {
		return errutil.Newf("coder: symbol %d out of range for context %d (alphabet size %d)", sym, ctxID, tree.n)
	}
	fl := tree.cumulative(int(sym))
	fh := fl + tree.freqOf(int(sym))
	ft := tree.total()
	c.trace("encode ctx=%d sym=%d fl=%d fh=%d ft=%d", ctxID, sym, fl, fh, ft)
	if err := c.enc.encode(fl, fh, ft); err != nil {
		return errutil.Err(err)
	}
	tree.update(int(sym), 1)
	return nil
}

// DecodeSymbol decodes one symbol under the given context and adaptively
// updates that context's frequency model.
func (c *Coder) DecodeSymbol(ctxID ContextID) (uint32, error) {
	if c.dec == nil {
		return 0, errutil.Newf("coder: DecodeSymbol called on an encoder-only Coder")
	}
	tree, err := c.ctx.tree(ctxID)
	if err != nil {
		return 0, errutil.Err(err)
	}
	ft := tree.total()
	target := c.dec.getFreq(ft)
	sym := tree.find(target)
	fl := tree.cumulative(sym)
	fh := fl + tree.freqOf(sym)
	c.trace("decode ctx=%d sym=%d fl=%d fh=%d ft=%d", ctxID, sym, fl, fh, ft)
	if err := c.dec.decodeUpdate(fl, fh, ft); err != nil {
		return 0, errutil.Err(err)
	}
	tree.update(sym, 1)
	return uint32(sym), nil
}

// EncodeEOF writes the end-of-stream marker under the eof context. Per the
// source's §9 design note, only the outermost framing caller (Encoder) ever
// calls this; per-channel/per-cube code never does.
func (c *Coder) EncodeEOF() error {
	return c.EncodeSymbol(ContextEOF, eofSymbolEOF)
}

// DecodeEOF decodes one symbol under the eof context and reports whether it
// was the end-of-stream marker.
func (c *Coder) DecodeEOF() (bool, error) {
	sym, err := c.DecodeSymbol(ContextEOF)
	if err != nil {
		return false, err
	}
	return sym == eofSymbolEOF, nil
}

// Flush emits the residual range-coder bits and closes the underlying
// bitsink. Must be called exactly once, after the last EncodeSymbol/
// EncodeEOF call.
func (c *Coder) Flush() error {
	if c.enc == nil {
		return errutil.Newf("coder: Flush called on a decoder-only Coder")
	}
	if err := c.enc.flush(); err != nil {
		return errutil.Err(err)
	}
	if err := c.enc.close(); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// WriteRawByte writes a raw, non-arithmetic-coded byte directly to the
// bitsink, outside the coded range. The root package's CRC-8 footer does
// not go through it: Encoder.EncodeAdu writes that byte straight to its own
// io.Writer after Flush.
func (c *Coder) WriteRawByte(b byte) error {
	if c.enc == nil {
		return errutil.Newf("coder: WriteRawByte called on a decoder-only Coder")
	}
	return errutil.Err(c.enc.w.WriteByte(b))
}

// ReadRawByte reads a raw, non-arithmetic-coded byte directly from the
// bitsink, the decode-side counterpart of WriteRawByte.
func (c *Coder) ReadRawByte() (byte, error) {
	if c.dec == nil {
		return 0, errutil.Newf("coder: ReadRawByte called on an encoder-only Coder")
	}
	b, err := c.dec.r.ReadByte()
	if err != nil {
		return 0, joinUnexpectedEOF(err)
	}
	return b, nil
}
