package mixer

import (
	"strconv"

	"github.com/pkg/errors"

	"imgfx/pkg/effect"
)

var ErrUnknownStep = errors.New("unknown step")

// Parse reads a step list such as "blur 2.5 invert rotate 180 brighten 10".
// Steps that take an argument consume the following word.
func Parse(args []string) ([]Effect, error) {
	var effs []Effect

	for i := 0; i < len(args); i++ {
		name := args[i]

		arg := func() (string, error) {
			if i+1 >= len(args) {
				return "", errors.Errorf("%s needs an argument", name)
			}
			i++
			return args[i], nil
		}

		switch name {
		case "invert":
			effs = append(effs, EffectInvert())
		case "grayscale":
			effs = append(effs, EffectGrayscale())
		case "blur":
			s, err := arg()
			if err != nil {
				return nil, err
			}
			sigma, err := effect.ParseSigma(s)
			if err != nil {
				return nil, errors.WithMessagef(err, "blur %q", s)
			}
			effs = append(effs, EffectBlur(sigma))
		case "brighten":
			s, err := arg()
			if err != nil {
				return nil, err
			}
			delta, err := effect.ParseBrightness(s)
			if err != nil {
				return nil, errors.WithMessagef(err, "brighten %q", s)
			}
			effs = append(effs, EffectBrighten(delta))
		case "crop":
			s, err := arg()
			if err != nil {
				return nil, err
			}
			rect, err := effect.ParseRect(s)
			if err != nil {
				return nil, err
			}
			effs = append(effs, EffectCrop(rect))
		case "rotate":
			s, err := arg()
			if err != nil {
				return nil, err
			}
			deg, err := strconv.Atoi(s)
			if err != nil {
				return nil, errors.Wrapf(effect.ErrBadParam, "rotate degrees %q", s)
			}
			eff, err := EffectRotate(deg)
			if err != nil {
				return nil, err
			}
			effs = append(effs, eff)
		default:
			return nil, errors.Wrapf(ErrUnknownStep, "%q", name)
		}
	}

	return effs, nil
}
