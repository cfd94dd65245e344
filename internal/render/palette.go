package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/npratt/refgraph/internal/catalog"
)

// Palette maps categories to colors and flattens translucent marks onto the
// background, since terminal cells have no alpha channel.
type Palette struct {
	Background colorful.Color
	Edge       colorful.Color
	Label      colorful.Color

	categories map[catalog.Category]colorful.Color
	fallback   colorful.Color
}

// NewPalette builds the grayscale palette over the given background hex.
func NewPalette(background string) (*Palette, error) {
	bg, err := colorful.Hex(background)
	if err != nil {
		return nil, fmt.Errorf("parse background %q: %w", background, err)
	}
	return &Palette{
		Background: bg,
		Edge:       mustHex("#ffffff"),
		Label:      mustHex("#ffffff"),
		categories: map[catalog.Category]colorful.Color{
			catalog.CategoryHapticNav:      mustHex("#ffffff"),
			catalog.CategoryUrbanAccess:    mustHex("#bbbbbb"),
			catalog.CategoryEmbodiedTheory: mustHex("#666666"),
		},
		fallback: mustHex("#888888"),
	}, nil
}

// DefaultPalette returns the palette over the stock background.
func DefaultPalette() *Palette {
	p, err := NewPalette("#0a0a0a")
	if err != nil {
		panic(err)
	}
	return p
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Category returns the node color for c.
func (p *Palette) Category(c catalog.Category) colorful.Color {
	if !c.Known() {
		return p.fallback
	}
	return p.categories[c]
}

// Over composites c at alpha onto the background.
func (p *Palette) Over(c colorful.Color, alpha uint8) colorful.Color {
	return p.Background.BlendRgb(c, float64(alpha)/255).Clamped()
}

// Hex returns c at alpha flattened onto the background as "#rrggbb".
func (p *Palette) Hex(c colorful.Color, alpha uint8) string {
	return p.Over(c, alpha).Hex()
}

// NRGBA returns c with a straight alpha channel, for image backends that
// composite themselves.
func NRGBA(c colorful.Color, alpha uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}
