package mixer

import (
	"fmt"
	"image"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Option func(m *Mixer)

func WithEffect(e ...Effect) Option {
	return func(m *Mixer) {
		m.effs = append(m.effs, e...)
	}
}

func NewMixer(logger *zap.Logger, opts ...Option) *Mixer {
	m := &Mixer{log: logger}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Mixer applies its effects one after another.
type Mixer struct {
	log  *zap.Logger
	effs []Effect
}

func (m *Mixer) Names() []string {
	return lo.Map(m.effs, func(e Effect, _ int) string { return e.Name() })
}

func (m *Mixer) Apply(img image.Image) (image.Image, error) {
	for i, eff := range m.effs {
		next, err := eff.Apply(img)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s) failed: %w", i+1, eff.Name(), err)
		}

		m.log.With(
			zap.Int("step", i+1),
			zap.String("effect", eff.Name()),
			zap.Int("w", next.Bounds().Dx()),
			zap.Int("h", next.Bounds().Dy()),
		).Debug("applied")

		img = next
	}

	return img, nil
}
