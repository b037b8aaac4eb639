// Package predict implements the codec core's residual predictor: a pure
// function predicting one event's (D, Δt) from its predecessor in the same
// pixel stream, plus the signed-residual offset biasing that makes the
// result codeable by a non-negative arithmetic coder.
//
// Grounded on the residual/predictive math in the teacher's fixed-predictor
// encoder (analysis_fixed.go) and LPC order selection (enc.go's
// calcPredictOrder-adjacent heuristics): a small integer predictor chosen
// from a handful of cases, evaluated against the neighboring sample, with
// the residual carried forward as a signed delta.
package predict

import (
	"math/bits"

	"github.com/adder-codec/core/adutype"
	"github.com/mewkiz/pkg/errutil"
)

// Residual is the signed (D, Δt) residual pair produced by Predict.
type Residual struct {
	DResid  int16
	DtResid int64
}

// Predict computes the predicted Δt for next given previous, per spec.md
// §4.3, and returns the signed D and Δt residuals.
//
// The d_resid<0 branch below is written exactly as the source states it —
// max(previous.Δt >> -d_resid, previous.Δt) — even though a right shift
// never exceeds its input, making that branch equivalent to previous.Δt.
// See the source's redesign note: kept literal pending verification against
// reference bitstreams, not "corrected" to min(...).
func Predict(previous, next adutype.EventCoordless, deltaTMax uint32) (Residual, error) {
	dResid := int32(next.D) - int32(previous.D)

	var predictedDt uint32
	switch {
	case dResid >= 1 && dResid <= 20:
		lz := bits.LeadingZeros32(previous.DeltaT)
		if int(dResid) <= lz/2 {
			predictedDt = saturatingShiftLeft(previous.DeltaT, uint(dResid), deltaTMax)
		} else {
			predictedDt = previous.DeltaT
		}
	case dResid <= -1 && dResid >= -20:
		shift := uint(-dResid)
		if int(shift) <= 32-bits.LeadingZeros32(previous.DeltaT) {
			shifted := previous.DeltaT >> shift
			if shifted > previous.DeltaT {
				predictedDt = shifted
			} else {
				predictedDt = previous.DeltaT
			}
		} else {
			predictedDt = previous.DeltaT
		}
	default:
		predictedDt = previous.DeltaT
	}

	dtResid := int64(next.DeltaT) - int64(predictedDt)
	if dResid < -128 || dResid > 127 {
		return Residual{}, errutil.Newf("predict.Predict: d residual %d out of i16-safe D domain", dResid)
	}
	return Residual{DResid: int16(dResid), DtResid: dtResid}, nil
}

// saturatingShiftLeft computes min(x<<shift, cap) without overflowing
// uint32 when shift is large.
func saturatingShiftLeft(x uint32, shift uint, cap uint32) uint32 {
	if shift >= 32 {
		return cap
	}
	shifted := uint64(x) << shift
	if shifted > uint64(cap) {
		return cap
	}
	return uint32(shifted)
}

// Reconstruct inverts Predict: given previous and a residual pair, it
// recovers next exactly. Exercised by round-trip tests (spec.md §8 testable
// property 3); the root Decoder does not call it. It recomputes predictedDt the same way
// Predict does, then adds back DtResid.
func Reconstruct(previous adutype.EventCoordless, resid Residual, deltaTMax uint32) adutype.EventCoordless {
	dResid := int32(resid.DResid)
	var predictedDt uint32
	switch {
	case dResid >= 1 && dResid <= 20:
		lz := bits.LeadingZeros32(previous.DeltaT)
		if int(dResid) <= lz/2 {
			predictedDt = saturatingShiftLeft(previous.DeltaT, uint(dResid), deltaTMax)
		} else {
			predictedDt = previous.DeltaT
		}
	case dResid <= -1 && dResid >= -20:
		shift := uint(-dResid)
		if int(shift) <= 32-bits.LeadingZeros32(previous.DeltaT) {
			shifted := previous.DeltaT >> shift
			if shifted > previous.DeltaT {
				predictedDt = shifted
			} else {
				predictedDt = previous.DeltaT
			}
		} else {
			predictedDt = previous.DeltaT
		}
	default:
		predictedDt = previous.DeltaT
	}

	nextD := uint8(int32(previous.D) + dResid)
	nextDt := uint32(int64(predictedDt) + resid.DtResid)
	return adutype.EventCoordless{D: nextD, DeltaT: nextDt}
}

// Offset maps a signed Δt residual in [-deltaTMax, +deltaTMax] bijectively
// to the non-negative range [0, 2*deltaTMax] the dt_context alphabet uses.
func Offset(r int64, deltaTMax uint32) (uint32, error) {
	if r < -int64(deltaTMax) || r > int64(deltaTMax) {
		return 0, errutil.Newf("predict.Offset: residual %d outside [-%d,+%d]", r, deltaTMax, deltaTMax)
	}
	return uint32(r + int64(deltaTMax)), nil
}

// InverseOffset is Offset's inverse.
func InverseOffset(s uint32, deltaTMax uint32) int64 {
	return int64(s) - int64(deltaTMax)
}
