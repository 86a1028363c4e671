package mixer

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"imgfx/pkg/effect"
)

type Effect interface {
	Name() string
	Apply(img image.Image) (image.Image, error)
}

type blur struct {
	sigma float64
}

func EffectBlur(sigma float64) Effect {
	return &blur{sigma: sigma}
}

func (e *blur) Name() string {
	return "blur"
}

func (e *blur) Apply(img image.Image) (image.Image, error) {
	return effect.BlurImage(img, e.sigma), nil
}

type brighten struct {
	delta int
}

func EffectBrighten(delta int) Effect {
	return &brighten{delta: delta}
}

func (e *brighten) Name() string {
	return "brighten"
}

func (e *brighten) Apply(img image.Image) (image.Image, error) {
	return effect.BrightenImage(img, e.delta), nil
}

type crop struct {
	rect effect.Rect
}

func EffectCrop(rect effect.Rect) Effect {
	return &crop{rect: rect}
}

func (e *crop) Name() string {
	return "crop"
}

func (e *crop) Apply(img image.Image) (image.Image, error) {
	return effect.CropImage(img, e.rect)
}

var ErrBadRotation = errors.New("rotation must be 90, 180 or 270")

type rotate struct {
	degrees int
}

// EffectRotate turns the image clockwise.
func EffectRotate(degrees int) (Effect, error) {
	switch degrees {
	case 90, 180, 270:
		return &rotate{degrees: degrees}, nil
	}
	return nil, errors.Wrapf(ErrBadRotation, "got %d", degrees)
}

func (e *rotate) Name() string {
	return "rotate"
}

func (e *rotate) Apply(img image.Image) (image.Image, error) {
	// imaging rotates counter-clockwise
	switch e.degrees {
	case 90:
		return imaging.Rotate270(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	default:
		return imaging.Rotate90(img), nil
	}
}

type invert struct{}

func EffectInvert() Effect {
	return invert{}
}

func (invert) Name() string {
	return "invert"
}

func (invert) Apply(img image.Image) (image.Image, error) {
	return imaging.Invert(img), nil
}

type grayscale struct{}

func EffectGrayscale() Effect {
	return grayscale{}
}

func (grayscale) Name() string {
	return "grayscale"
}

func (grayscale) Apply(img image.Image) (image.Image, error) {
	return imaging.Grayscale(img), nil
}
