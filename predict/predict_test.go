package predict

import (
	"testing"

	"github.com/adder-codec/core/adutype"
)

func TestPredictSanityVector(t *testing.T) {
	prev := adutype.EventCoordless{D: 5, DeltaT: 100}
	next := adutype.EventCoordless{D: 7, DeltaT: 400}

	resid, err := Predict(prev, next, 10_000)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if resid.DResid != 2 {
		t.Fatalf("DResid = %d, want 2", resid.DResid)
	}
	if resid.DtResid != 0 {
		t.Fatalf("DtResid = %d, want 0 (predicted Δt = 100<<2 = 400)", resid.DtResid)
	}
}

func TestPredictReconstructRoundTrip(t *testing.T) {
	const deltaTMax = 10_000
	cases := []struct {
		prev, next adutype.EventCoordless
	}{
		{adutype.EventCoordless{D: 5, DeltaT: 100}, adutype.EventCoordless{D: 7, DeltaT: 400}},
		{adutype.EventCoordless{D: 10, DeltaT: 5000}, adutype.EventCoordless{D: 10, DeltaT: 5001}},
		{adutype.EventCoordless{D: 50, DeltaT: 1}, adutype.EventCoordless{D: 30, DeltaT: 1}},
		{adutype.EventCoordless{D: 0, DeltaT: 9999}, adutype.EventCoordless{D: 1, DeltaT: 0}},
		{adutype.EventCoordless{D: 100, DeltaT: 50}, adutype.EventCoordless{D: 90, DeltaT: 200}},
	}
	for i, c := range cases {
		resid, err := Predict(c.prev, c.next, deltaTMax)
		if err != nil {
			t.Fatalf("case %d: Predict: %v", i, err)
		}
		got := Reconstruct(c.prev, resid, deltaTMax)
		if got != c.next {
			t.Fatalf("case %d: Reconstruct = %+v, want %+v", i, got, c.next)
		}
	}
}

func TestOffsetInverseOffsetProperty(t *testing.T) {
	const deltaTMax = 500
	for r := int64(-deltaTMax); r <= deltaTMax; r++ {
		s, err := Offset(r, deltaTMax)
		if err != nil {
			t.Fatalf("Offset(%d): %v", r, err)
		}
		if got := InverseOffset(s, deltaTMax); got != r {
			t.Fatalf("InverseOffset(Offset(%d)) = %d, want %d", r, got, r)
		}
	}
}

func TestOffsetRejectsOutOfRange(t *testing.T) {
	const deltaTMax = 10
	if _, err := Offset(deltaTMax+1, deltaTMax); err == nil {
		t.Fatalf("Offset(deltaTMax+1): want error, got nil")
	}
	if _, err := Offset(-deltaTMax-1, deltaTMax); err == nil {
		t.Fatalf("Offset(-deltaTMax-1): want error, got nil")
	}
}

func TestPredictFallsBackBeyondWindow(t *testing.T) {
	prev := adutype.EventCoordless{D: 5, DeltaT: 1000}
	next := adutype.EventCoordless{D: 30, DeltaT: 1000}
	resid, err := Predict(prev, next, 100_000)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if resid.DtResid != 0 {
		t.Fatalf("DtResid = %d, want 0 (predictor falls back to previous.Δt = next.Δt here)", resid.DtResid)
	}
}
