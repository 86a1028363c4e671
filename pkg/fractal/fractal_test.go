package fractal

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestPixelGradient(t *testing.T) {
	cases := []struct {
		x, y      int
		red, blue uint8
	}{
		{0, 0, 0, 0},
		{1, 3, 0, 0},
		{4, 7, 1, 2},
		{10, 100, 3, 30},
		{799, 799, 239, 239},
		{400, 0, 120, 0},
	}

	for _, c := range cases {
		p := Pixel(c.x, c.y, Width, Height)
		assert.Equal(t, c.red, p.R, "red at (%d,%d)", c.x, c.y)
		assert.Equal(t, c.blue, p.B, "blue at (%d,%d)", c.x, c.y)
	}
}

func TestPixelEscape(t *testing.T) {
	// the corner maps to (-1.5, -1.5), |z| > 2 before the first step
	assert.Equal(t, uint8(0), Pixel(0, 0, Width, Height).G)

	// the origin is the critical point, C lies just outside the Mandelbrot set
	assert.Equal(t, uint8(26), Escape(0, 0))
	assert.Equal(t, uint8(26), Pixel(400, 400, Width, Height).G)

	// never leaves the radius within the cap
	assert.Equal(t, uint8(MaxIter), Pixel(300, 360, Width, Height).G)
	assert.Equal(t, uint8(MaxIter), Pixel(380, 250, Width, Height).G)

	// |(3,0)| = 3 > 2 from the start
	assert.Equal(t, uint8(0), Escape(3, 0))
	// (1.9, 0): z1 = 3.21-0.4 + 0.6i, escapes after one step
	assert.Equal(t, uint8(1), Escape(1.9, 0))
}

func TestPixelAxesSwapped(t *testing.T) {
	// x drives the imaginary part, y the real part; the set is not
	// symmetric under that swap for this C, so the transposed pixel differs
	// somewhere along the diagonal band
	var differs bool
	for i := 0; i < Width && !differs; i += 7 {
		a := Pixel(i, 300, Width, Height).G
		b := Pixel(300, i, Width, Height).G
		differs = a != b
	}
	assert.True(t, differs)
}

func TestEscapeMatchesReference(t *testing.T) {
	// Independent iteration on a coarse grid. Every float32 product is
	// rounded explicitly: complex64 multiplication may keep wider
	// intermediates, so z*z+C is not an equivalent reference.
	ref := func(x, y int) uint8 {
		sx := float32(3.0) / Width
		sy := float32(3.0) / Height
		z := complex(float32(float32(y)*sx)-1.5, float32(float32(x)*sy)-1.5)
		var n uint8
		for n < 255 && float32(math.Hypot(float64(real(z)), float64(imag(z)))) <= 2 {
			rr := float32(real(z) * real(z))
			ii := float32(imag(z) * imag(z))
			ri := float32(real(z) * imag(z))
			z = complex(float32(rr-ii)+real(C), float32(ri+ri)+imag(C))
			n++
		}
		return n
	}

	for x := 0; x < Width; x += 37 {
		for y := 0; y < Height; y += 41 {
			require.Equal(t, ref(x, y), Pixel(x, y, Width, Height).G, "green at (%d,%d)", x, y)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	one, err := NewRenderer(logger, WithWorkers(1)).Render(ctx)
	require.NoError(t, err)

	many, err := NewRenderer(logger, WithWorkers(8)).Render(ctx)
	require.NoError(t, err)

	again, err := NewRenderer(logger).Render(ctx)
	require.NoError(t, err)

	assert.Equal(t, Width, one.Bounds().Dx())
	assert.Equal(t, Height, one.Bounds().Dy())
	assert.True(t, bytes.Equal(one.Pix, many.Pix))
	assert.True(t, bytes.Equal(one.Pix, again.Pix))
}

func TestRenderFormula(t *testing.T) {
	img, err := NewRenderer(zaptest.NewLogger(t), WithWorkers(4)).Render(context.Background())
	require.NoError(t, err)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			p := img.RGBAt(x, y)
			if p.R != uint8(math.Floor(0.3*float64(x))) || p.B != uint8(math.Floor(0.3*float64(y))) {
				t.Fatalf("gradient mismatch at (%d,%d): %+v", x, y, p)
			}
			if p != Pixel(x, y, Width, Height) {
				t.Fatalf("pixel mismatch at (%d,%d)", x, y)
			}
		}
	}
}

func TestRenderProgress(t *testing.T) {
	var out bytes.Buffer
	_, err := NewRenderer(zaptest.NewLogger(t), WithSize(16, 8), WithProgress(&out)).Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Rendering fractal")
}

func TestRenderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer(zaptest.NewLogger(t), WithWorkers(2)).Render(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
