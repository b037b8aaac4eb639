// Package transform implements the codec core's DCT stage: a 16×16
// separable type-II DCT applied to a block of Δt residuals, plus the
// scalar DC/AC quantizer that follows it.
//
// Grounded structurally on other_examples' lowleveljpeg.go: a separable
// transform applied row-then-column (there, column-then-row over an 8×8
// block), followed by per-coefficient scalar division/multiplication
// against a quantization table.
package transform

import "math"

// BlockDim is the side length of the square coefficient matrix the
// transform operates on, matching adutype.BlockSize.
const BlockDim = 16

var basis [BlockDim][BlockDim]float64

func init() {
	for u := 0; u < BlockDim; u++ {
		for x := 0; x < BlockDim; x++ {
			basis[u][x] = math.Cos(math.Pi / float64(BlockDim) * (float64(x) + 0.5) * float64(u))
		}
	}
}

func alpha(u int) float64 {
	if u == 0 {
		return math.Sqrt(1.0 / BlockDim)
	}
	return math.Sqrt(2.0 / BlockDim)
}

// dct1D applies the 1D type-II DCT to row (length BlockDim) in place.
func dct1D(row *[BlockDim]float64) {
	var out [BlockDim]float64
	for u := 0; u < BlockDim; u++ {
		var sum float64
		for x := 0; x < BlockDim; x++ {
			sum += row[x] * basis[u][x]
		}
		out[u] = alpha(u) * sum
	}
	*row = out
}

// idct1D applies the 1D inverse type-II DCT (a type-III DCT) to row in
// place.
func idct1D(row *[BlockDim]float64) {
	var out [BlockDim]float64
	for x := 0; x < BlockDim; x++ {
		var sum float64
		for u := 0; u < BlockDim; u++ {
			sum += alpha(u) * row[u] * basis[u][x]
		}
		out[x] = sum
	}
	*row = out
}

func transpose(m *[BlockDim][BlockDim]float64) {
	for i := 0; i < BlockDim; i++ {
		for j := i + 1; j < BlockDim; j++ {
			m[i][j], m[j][i] = m[j][i], m[i][j]
		}
	}
}

// Forward2D applies the separable 16×16 DCT-II to in (row-major,
// BlockDim*BlockDim Δt residuals) and returns the rounded i16 coefficient
// matrix, per spec.md §4.5: row pass, transpose, row pass, transpose back.
func Forward2D(in [BlockDim * BlockDim]int16) [BlockDim * BlockDim]int16 {
	var m [BlockDim][BlockDim]float64
	for y := 0; y < BlockDim; y++ {
		for x := 0; x < BlockDim; x++ {
			m[y][x] = float64(in[y*BlockDim+x])
		}
	}
	for y := 0; y < BlockDim; y++ {
		dct1D(&m[y])
	}
	transpose(&m)
	for y := 0; y < BlockDim; y++ {
		dct1D(&m[y])
	}
	transpose(&m)

	var out [BlockDim * BlockDim]int16
	for y := 0; y < BlockDim; y++ {
		for x := 0; x < BlockDim; x++ {
			out[y*BlockDim+x] = int16(math.Round(m[y][x]))
		}
	}
	return out
}

// Inverse2D is Forward2D's inverse, mirrored: row pass, transpose, row
// pass, transpose back, using the type-III (inverse) 1D DCT.
func Inverse2D(in [BlockDim * BlockDim]int16) [BlockDim * BlockDim]int16 {
	var m [BlockDim][BlockDim]float64
	for y := 0; y < BlockDim; y++ {
		for x := 0; x < BlockDim; x++ {
			m[y][x] = float64(in[y*BlockDim+x])
		}
	}
	for y := 0; y < BlockDim; y++ {
		idct1D(&m[y])
	}
	transpose(&m)
	for y := 0; y < BlockDim; y++ {
		idct1D(&m[y])
	}
	transpose(&m)

	var out [BlockDim * BlockDim]int16
	for y := 0; y < BlockDim; y++ {
		for x := 0; x < BlockDim; x++ {
			out[y*BlockDim+x] = int16(math.Round(m[y][x]))
		}
	}
	return out
}
