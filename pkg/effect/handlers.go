package effect

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"imgfx/pkg/fractal"
	"imgfx/pkg/imageio"
)

var ErrEmptyCrop = errors.New("crop rectangle is outside the image")

func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
}

// BlurImage applies a Gaussian blur.
func BlurImage(img image.Image, sigma float64) image.Image {
	return imaging.Blur(img, sigma)
}

// BrightenImage adds delta to every color channel and clamps to 8 bits,
// alpha is left alone.
func BrightenImage(img image.Image, delta int) image.Image {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clampAdd(c.R, delta),
			G: clampAdd(c.G, delta),
			B: clampAdd(c.B, delta),
			A: c.A,
		}
	})
}

// CropImage cuts rect, given relative to the top left corner, out of img.
// Parts outside the image are dropped.
func CropImage(img image.Image, rect Rect) (image.Image, error) {
	b := img.Bounds()
	r := rect.Rectangle().Add(b.Min).Intersect(b)
	if r.Empty() {
		return nil, errors.Wrapf(ErrEmptyCrop, "%v of %v", rect.Rectangle(), b.Size())
	}
	return imaging.Crop(img, r), nil
}

func clampAdd(v uint8, delta int) uint8 {
	n := int64(v) + int64(delta)
	switch {
	case n < 0:
		return 0
	case n > 255:
		return 255
	}
	return uint8(n)
}

// Handlers holds the dependencies shared by all effect handlers.
type Handlers struct {
	store    *imageio.Store
	renderer *fractal.Renderer
	out      io.Writer
	log      *zap.Logger
}

func NewHandlers(store *imageio.Store, renderer *fractal.Renderer, out io.Writer, logger *zap.Logger) *Handlers {
	return &Handlers{
		store:    store,
		renderer: renderer,
		out:      out,
		log:      logger,
	}
}

// transform loads the input, applies fn and saves the result.
func (h *Handlers) transform(req *Request, fn func(image.Image) (image.Image, error)) error {
	img, err := h.store.Load(req.Input)
	if err != nil {
		return err
	}

	img2, err := fn(img)
	if err != nil {
		return err
	}

	return h.store.Save(req.Output, img2)
}

func (h *Handlers) Blur(_ context.Context, req *Request) error {
	sigma, err := req.Sigma()
	if err != nil {
		return err
	}

	h.log.With(zap.Float64("sigma", sigma)).Debug("blur")

	return h.transform(req, func(img image.Image) (image.Image, error) {
		return BlurImage(img, sigma), nil
	})
}

func (h *Handlers) Brighten(_ context.Context, req *Request) error {
	delta, err := req.Brightness()
	if err != nil {
		return err
	}

	h.log.With(zap.Int("delta", delta)).Debug("brighten")

	return h.transform(req, func(img image.Image) (image.Image, error) {
		return BrightenImage(img, delta), nil
	})
}

func (h *Handlers) Crop(_ context.Context, req *Request) error {
	rect, err := req.CropRect()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(h.out, "cropping x %d y %d width %d height %d\n", rect.X, rect.Y, rect.Width, rect.Height)

	return h.transform(req, func(img image.Image) (image.Image, error) {
		return CropImage(img, rect)
	})
}

// Fractal renders without reading the input.
func (h *Handlers) Fractal(ctx context.Context, req *Request) error {
	img, err := h.renderer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render fractal failed: %w", err)
	}

	return h.store.Save(req.Output, img)
}
