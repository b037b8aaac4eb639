package coder

import "github.com/mewkiz/pkg/errutil"

// ContextID names one of the four fixed contexts spec.md §4.2 registers.
type ContextID int

const (
	// ContextD carries zig-zag-encoded D residuals (see the root package's
	// dResidualSymbol/dResidualFromSymbol, which use internal/bits'
	// EncodeZigZag/DecodeZigZag): symbols 0..=254 cover signed
	// residuals in [-127,+127], and 255 is the DEncodeNoEvent sentinel.
	ContextD ContextID = iota
	// ContextDt carries offset-biased Δt residuals: alphabet
	// 0..=(2*DeltaTMax).
	ContextDt
	// ContextU8General carries generic bytes: counts, shift parameters,
	// coordinates.
	ContextU8General
	// ContextEOF carries the end-of-stream marker: {non-EOF, EOF}.
	ContextEOF
)

const (
	dAlphabetSize   = 256 // zig-zag residuals 0..=254 plus the DEncodeNoEvent sentinel (255)
	u8AlphabetSize  = 256
	eofAlphabetSize = 2

	eofSymbolContinue = 0
	eofSymbolEOF      = 1
)

// contextRegistry owns one adaptive Fenwick tree per fixed context,
// pre-sized to that context's alphabet. Created at Coder construction and
// freed with it; see spec.md §5.
type contextRegistry struct {
	d    *fenwickTree
	dt   *fenwickTree
	u8   *fenwickTree
	eof  *fenwickTree
	dtMax uint32
}

func newContextRegistry(deltaTMax uint32) (*contextRegistry, error) {
	if deltaTMax == 0 {
		return nil, errutil.Newf("coder.newContextRegistry: DeltaTMax must be strictly positive")
	}
	dtAlphabet := 2*uint64(deltaTMax) + 1
	if dtAlphabet > (1 << 28) {
		return nil, errutil.Newf("coder.newContextRegistry: DeltaTMax %d produces an unworkably large dt_context alphabet", deltaTMax)
	}
	return &contextRegistry{
		d:     newFenwickTree(dAlphabetSize),
		dt:    newFenwickTree(int(dtAlphabet)),
		u8:    newFenwickTree(u8AlphabetSize),
		eof:   newFenwickTree(eofAlphabetSize),
		dtMax: deltaTMax,
	}, nil
}

func (reg *contextRegistry) tree(ctx ContextID) (*fenwickTree, error) {
	switch ctx {
	case ContextD:
		return reg.d, nil
	case ContextDt:
		return reg.dt, nil
	case ContextU8General:
		return reg.u8, nil
	case ContextEOF:
		return reg.eof, nil
	default:
		return nil, errutil.Newf("coder: unknown context id %d", ctx)
	}
}
