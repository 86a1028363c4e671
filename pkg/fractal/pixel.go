package fractal

import (
	"math"

	"imgfx/pkg/bitmap"
)

const (
	Width  = 800
	Height = 800

	// MaxIter caps the escape-time loop, it is also the brightest green.
	MaxIter = 255
	// Radius is the escape radius for |z|.
	Radius = 2.0
)

// C is the fixed Julia constant added on every step.
var C = complex64(complex(-0.4, 0.6))

// Pixel computes the color at (x, y) of a width×height fractal.
//
// Red and blue form a coordinate gradient, green is the escape time of
// z ← z² + C starting from the point the pixel maps to. Pixel x feeds the
// imaginary part and pixel y the real part. All arithmetic is done in
// float32, every product is rounded before it is summed so results do not
// depend on FMA availability.
func Pixel(x, y, width, height int) bitmap.Pixel {
	scaleX := float32(3.0) / float32(width)
	scaleY := float32(3.0) / float32(height)

	red := channel(float32(float32(0.3) * float32(x)))
	blue := channel(float32(float32(0.3) * float32(y)))

	zr := float32(float32(y)*scaleX) - 1.5
	zi := float32(float32(x)*scaleY) - 1.5

	return bitmap.Pixel{R: red, G: Escape(zr, zi), B: blue}
}

// Escape counts the iterations until |z| > Radius, at most MaxIter.
func Escape(zr, zi float32) uint8 {
	cr, ci := real(C), imag(C)

	var n uint8
	for n < MaxIter && norm(zr, zi) <= Radius {
		rr := float32(zr * zr)
		ii := float32(zi * zi)
		ri := float32(zr * zi)
		ir := float32(zi * zr)
		zr = float32(rr-ii) + cr
		zi = float32(ri+ir) + ci
		n++
	}
	return n
}

// channel truncates toward zero and saturates at the 8 bit range.
func channel(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

func norm(re, im float32) float32 {
	return float32(math.Hypot(float64(re), float64(im)))
}
