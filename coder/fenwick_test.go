package coder

import "testing"

func TestFenwickTreeUniformInit(t *testing.T) {
	ft := newFenwickTree(16)
	if got, want := ft.total(), uint32(16); got != want {
		t.Fatalf("total() = %d, want %d", got, want)
	}
	for sym := 0; sym < 16; sym++ {
		if got := ft.freqOf(sym); got != 1 {
			t.Fatalf("freqOf(%d) = %d, want 1", sym, got)
		}
		if got, want := ft.cumulative(sym), uint32(sym); got != want {
			t.Fatalf("cumulative(%d) = %d, want %d", sym, got, want)
		}
	}
}

func TestFenwickTreeUpdateAndFind(t *testing.T) {
	ft := newFenwickTree(8)
	ft.update(3, 10)

	if got, want := ft.freqOf(3), uint32(11); got != want {
		t.Fatalf("freqOf(3) = %d, want %d", got, want)
	}
	if got, want := ft.total(), uint32(18); got != want {
		t.Fatalf("total() = %d, want %d", got, want)
	}

	for sym := 0; sym < ft.n; sym++ {
		fl := ft.cumulative(sym)
		fh := fl + ft.freqOf(sym)
		for target := fl; target < fh; target++ {
			if got := ft.find(target); got != sym {
				t.Fatalf("find(%d) = %d, want %d (fl=%d fh=%d)", target, got, sym, fl, fh)
			}
		}
	}
}

func TestFenwickTreeRescale(t *testing.T) {
	ft := newFenwickTree(4)
	for i := 0; i < 600; i++ {
		ft.update(0, 2000)
	}
	if ft.total() > rescaleThreshold {
		t.Fatalf("total() = %d, exceeds rescaleThreshold %d after rescale", ft.total(), rescaleThreshold)
	}
	for sym := 0; sym < ft.n; sym++ {
		if ft.freqOf(sym) == 0 {
			t.Fatalf("freqOf(%d) = 0 after rescale, every symbol must stay encodable", sym)
		}
	}
}

func TestFenwickTreeFindCoversFullRange(t *testing.T) {
	ft := newFenwickTree(5)
	ft.update(1, 50)
	ft.update(4, 7)
	total := ft.total()
	for target := uint32(0); target < total; target++ {
		sym := ft.find(target)
		fl := ft.cumulative(sym)
		fh := fl + ft.freqOf(sym)
		if target < fl || target >= fh {
			t.Fatalf("find(%d) = %d but [fl,fh)=[%d,%d) doesn't contain target", target, sym, fl, fh)
		}
	}
}
