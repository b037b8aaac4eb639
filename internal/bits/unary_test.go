package bits_test

import (
	"bytes"
	"testing"

	"github.com/icza/bitio"

	"github.com/adder-codec/core/internal/bits"
)

func TestUnary(t *testing.T) {
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)

	var want uint64
	for ; want < 1000; want++ {
		if err := bits.WriteUnary(bw, want); err != nil {
			t.Fatalf("error writing unary: %v", err)
		}
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("error closing the buffer: %v", err)
	}

	br := bitio.NewReader(buf)
	for want = 0; want < 1000; want++ {
		got, err := bits.ReadUnary(br)
		if err != nil {
			t.Fatalf("error reading unary: %v", err)
		}
		if got != want {
			t.Fatalf("the written and read unary doesn't match the original. got: %v, expected: %v", got, want)
		}
	}
}
