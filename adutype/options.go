package adutype

import "github.com/mewkiz/pkg/errutil"

// Options configures the codec core's constructors (spec.md §6).
type Options struct {
	// DeltaTMax upper-bounds Δt; sizes the dt_context alphabet.
	DeltaTMax uint32
	// RefInterval is the reference tick interval used by predictor callers.
	RefInterval uint32
	// PlaneSize sizes the cube grid a Frame aggregates events into.
	PlaneSize PlaneSize
	// TimeMode selects how Event.DeltaT is interpreted.
	TimeMode TimeMode
	// QParam is the DCT quantization strength, in [0,63]. At 0,
	// transform.Quantize/Dequantize are the identity; the DCT itself still
	// rounds its coefficients, so a forward/inverse pass is not bit-exact.
	// Encoder and Decoder do not apply the DCT stage.
	QParam uint8
}

// NewOptions validates opts and returns them unmodified if valid, the same
// way meta.NewStreamInfo rejects an invalid field at construction instead
// of deferring the check to first use.
func NewOptions(opts Options) (Options, error) {
	if opts.DeltaTMax == 0 {
		return Options{}, errutil.Newf("adutype.NewOptions: DeltaTMax must be strictly positive")
	}
	if opts.PlaneSize.Width == 0 || opts.PlaneSize.Height == 0 || opts.PlaneSize.Channels == 0 {
		return Options{}, errutil.Newf("adutype.NewOptions: invalid plane size %dx%dx%d", opts.PlaneSize.Width, opts.PlaneSize.Height, opts.PlaneSize.Channels)
	}
	if opts.QParam > 63 {
		return Options{}, errutil.Newf("adutype.NewOptions: qparam must be <= 63, got %d", opts.QParam)
	}
	return opts, nil
}
