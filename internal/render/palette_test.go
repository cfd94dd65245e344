package render

import (
	"image/color"
	"testing"

	"github.com/npratt/refgraph/internal/catalog"
)

func TestPalette_Categories(t *testing.T) {
	p := DefaultPalette()
	tests := []struct {
		cat  catalog.Category
		want string
	}{
		{catalog.CategoryHapticNav, "#ffffff"},
		{catalog.CategoryUrbanAccess, "#bbbbbb"},
		{catalog.CategoryEmbodiedTheory, "#666666"},
		{"something-else", "#888888"},
		{"", "#888888"},
	}
	for _, tt := range tests {
		if got := p.Category(tt.cat).Hex(); got != tt.want {
			t.Errorf("Category(%q) = %s, want %s", tt.cat, got, tt.want)
		}
	}
}

func TestPalette_Hex(t *testing.T) {
	p := DefaultPalette()
	white := p.Category(catalog.CategoryHapticNav)

	if got := p.Hex(white, 255); got != "#ffffff" {
		t.Errorf("Hex(white, 255) = %s, want #ffffff", got)
	}
	if got := p.Hex(white, 0); got != "#0a0a0a" {
		t.Errorf("Hex(white, 0) = %s, want background", got)
	}
	mid := p.Over(white, 128)
	r, _, _ := mid.RGB255()
	if r < 120 || r > 140 {
		t.Errorf("Over(white, 128) red = %d, want about halfway", r)
	}
}

func TestNewPalette_BadBackground(t *testing.T) {
	if _, err := NewPalette("not-a-color"); err == nil {
		t.Error("NewPalette accepted an invalid color")
	}
}

func TestNRGBA(t *testing.T) {
	got := NRGBA(DefaultPalette().Category(catalog.CategoryUrbanAccess), 60)
	want := color.NRGBA{R: 0xbb, G: 0xbb, B: 0xbb, A: 60}
	if got != want {
		t.Errorf("NRGBA = %+v, want %+v", got, want)
	}
}
