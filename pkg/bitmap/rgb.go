package bitmap

import (
	"image"
	"image/color"
)

func NewRGB(r image.Rectangle) *RGB {
	return &RGB{
		Pix:    make([]byte, 3*r.Dx()*r.Dy()),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

// RGB is a packed 24 bit raster. It implements the draw.Image interface.
type RGB struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// Bounds implements the image.Image (and draw.Image) interface.
func (d *RGB) Bounds() image.Rectangle {
	return d.Rect
}

// ColorModel implements the image.Image (and draw.Image) interface.
func (d *RGB) ColorModel() color.Model {
	return RGBModel
}

// At implements the image.Image (and draw.Image) interface.
func (d *RGB) At(x, y int) color.Color {
	return d.RGBAt(x, y)
}

func (d *RGB) RGBAt(x, y int) Pixel {
	if !(image.Point{X: x, Y: y}.In(d.Rect)) {
		return Pixel{}
	}
	i := d.PixOffset(x, y)
	s := d.Pix[i : i+3 : i+3]
	return Pixel{R: s[0], G: s[1], B: s[2]}
}

// Set implements the draw.Image interface.
func (d *RGB) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(d.Rect)) {
		return
	}
	d.SetRGB(x, y, RGBModel.Convert(c).(Pixel))
}

func (d *RGB) SetRGB(x, y int, p Pixel) {
	if !(image.Point{X: x, Y: y}.In(d.Rect)) {
		return
	}
	i := d.PixOffset(x, y)
	s := d.Pix[i : i+3 : i+3]
	s[0] = p.R
	s[1] = p.G
	s[2] = p.B
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (d *RGB) PixOffset(x, y int) int {
	return (y-d.Rect.Min.Y)*d.Stride + (x-d.Rect.Min.X)*3
}

// Opaque reports true, there is no alpha channel.
func (d *RGB) Opaque() bool {
	return true
}

// Pixel is one 8 bit per channel color without alpha.
type Pixel struct {
	R, G, B uint8
}

// RGBA implements the color.Color interface.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	// duplicate the byte into both halves to widen 8 bits to 16
	r = uint32(p.R) * 0x101
	g = uint32(p.G) * 0x101
	b = uint32(p.B) * 0x101
	a = 0xFFFF
	return
}

var RGBModel color.Model = color.ModelFunc(rgbModel)

// rgbModel drops alpha after un-premultiplying, so a half transparent red
// becomes full red.
func rgbModel(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: n.R, G: n.G, B: n.B}
}
