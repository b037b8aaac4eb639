package transform

import "testing"

func TestForwardInverseRoundTripAtZeroQParam(t *testing.T) {
	var in [BlockDim * BlockDim]int16
	for i := range in {
		in[i] = int16((i*37 - 128) % 97)
	}

	coeffs := Forward2D(in)
	quantized := Quantize(coeffs, 0)
	dequantized := Dequantize(quantized, 0)
	out := Inverse2D(dequantized)

	for i := range in {
		diff := int(out[i]) - int(in[i])
		if diff < -1 || diff > 1 {
			t.Fatalf("position %d: round-trip = %d, want ~%d (diff %d)", i, out[i], in[i], diff)
		}
	}
}

func TestQuantizeDequantizeExactAtZeroQParam(t *testing.T) {
	var coeffs [BlockDim * BlockDim]int16
	for i := range coeffs {
		coeffs[i] = int16(i - 128)
	}
	q := Quantize(coeffs, 0)
	dq := Dequantize(q, 0)
	if dq != coeffs {
		t.Fatalf("Dequantize(Quantize(x, 0), 0) != x at qparam=0")
	}
}

func TestACQZeroIsOne(t *testing.T) {
	if got := acQ(0); got != 1 {
		t.Fatalf("acQ(0) = %d, want 1", got)
	}
}

func TestQuantSchedulesMonotone(t *testing.T) {
	for q := uint8(0); q < 63; q++ {
		if dcQ(q) > dcQ(q+1) {
			t.Fatalf("dcQ not monotone at qparam=%d: dcQ(%d)=%d > dcQ(%d)=%d", q, q, dcQ(q), q+1, dcQ(q+1))
		}
		if acQ(q) > acQ(q+1) {
			t.Fatalf("acQ not monotone at qparam=%d: acQ(%d)=%d > acQ(%d)=%d", q, q, acQ(q), q+1, acQ(q+1))
		}
	}
}

func TestDCCoefficientCapturesMean(t *testing.T) {
	var in [BlockDim * BlockDim]int16
	for i := range in {
		in[i] = 10
	}
	coeffs := Forward2D(in)
	want := int16(10 * BlockDim)
	if diff := int(coeffs[0]) - int(want); diff < -1 || diff > 1 {
		t.Fatalf("DC coefficient = %d, want ~%d for a constant block", coeffs[0], want)
	}
	for i := 1; i < len(coeffs); i++ {
		if coeffs[i] < -1 || coeffs[i] > 1 {
			t.Fatalf("AC coefficient at %d = %d, want ~0 for a constant block", i, coeffs[i])
		}
	}
}
