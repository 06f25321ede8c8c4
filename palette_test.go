package mandel

import (
	"image/color"
	"testing"
)

func TestPaletteInSetIsBlack(t *testing.T) {
	for _, p := range []Palette{Banded{}, Grayscale{}} {
		if got := p.Color(0); got != (color.RGBA{A: 0xff}) {
			t.Errorf("%T.Color(0) = %v, want opaque black", p, got)
		}
	}
}

func TestPaletteDeterministicAndOpaque(t *testing.T) {
	for _, p := range []Palette{Banded{}, Grayscale{}} {
		for n := 0; n < DefaultMaxIterations; n++ {
			c := p.Color(n)
			if c != p.Color(n) {
				t.Fatalf("%T.Color(%d) not deterministic", p, n)
			}
			if c.A != 0xff {
				t.Fatalf("%T.Color(%d).A = %d, want 255", p, n, c.A)
			}
		}
	}
}

func TestBandedDistinguishesNeighbours(t *testing.T) {
	p := Banded{}
	for n := 1; n < 64; n++ {
		if p.Color(n) == p.Color(n+1) {
			t.Errorf("Color(%d) == Color(%d)", n, n+1)
		}
		if p.Color(n) == InSet {
			t.Errorf("Color(%d) is the in-set color", n)
		}
	}
}

func TestTriangle(t *testing.T) {
	tests := []struct {
		v    int
		want uint8
	}{
		{0, 0}, {1, 1}, {255, 255}, {256, 255}, {257, 254}, {511, 0}, {512, 0}, {513, 1},
	}
	for _, tt := range tests {
		if got := triangle(tt.v); got != tt.want {
			t.Errorf("triangle(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestPaletteByName(t *testing.T) {
	for _, name := range []string{"", "banded", "gray", "grayscale"} {
		if _, ok := PaletteByName(name); !ok {
			t.Errorf("PaletteByName(%q) not found", name)
		}
	}
	if _, ok := PaletteByName("rainbow"); ok {
		t.Error("PaletteByName(rainbow) should not exist")
	}
}

func TestPaletteFunc(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	p := PaletteFunc(func(int) color.RGBA { return red })
	if p.Color(7) != red {
		t.Error("PaletteFunc did not call the function")
	}
}
