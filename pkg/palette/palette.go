// Package palette generates one color per pie chart category.
//
// Colors are drawn independently and uniformly per channel. No uniqueness
// or contrast guarantee is made; two categories may share a color.
//
// Randomness comes from an injected *rand.Rand, so a seeded generator
// reproduces the same palette:
//
//	gen := palette.New(42)
//	colors := gen.Generate(len(summary.Distinct))
//
// Tests that need exact colors can use [Fixed].
package palette

import (
	"fmt"
	"math/rand/v2"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return c.Colorful().Hex()
}

// Colorful converts c to a go-colorful color.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Generator produces n colors.
type Generator interface {
	Generate(n int) []Color
}

// Random draws every channel uniformly from the full byte range.
type Random struct {
	rng *rand.Rand
}

// NewRandomFrom wraps an existing source.
func NewRandomFrom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// New returns a reproducible generator seeded with seed.
func New(seed uint64) *Random {
	return NewRandomFrom(rand.New(rand.NewPCG(seed, seed^0xdeadbeef)))
}

// NewRandom returns a generator seeded from the runtime's entropy source.
func NewRandom() *Random {
	return New(rand.Uint64())
}

// Generate returns n random colors. n <= 0 yields an empty slice.
func (r *Random) Generate(n int) []Color {
	if n <= 0 {
		return []Color{}
	}
	colors := make([]Color, n)
	for i := range colors {
		colors[i] = Color{
			R: uint8(r.rng.UintN(256)),
			G: uint8(r.rng.UintN(256)),
			B: uint8(r.rng.UintN(256)),
		}
	}
	return colors
}

// Fixed cycles through a predefined list of colors.
type Fixed []Color

// Generate returns n colors taken from f in order, wrapping around.
// An empty Fixed yields black.
func (f Fixed) Generate(n int) []Color {
	if n <= 0 {
		return []Color{}
	}
	colors := make([]Color, n)
	if len(f) == 0 {
		return colors
	}
	for i := range colors {
		colors[i] = f[i%len(f)]
	}
	return colors
}

var (
	_ Generator = (*Random)(nil)
	_ Generator = Fixed(nil)
)
