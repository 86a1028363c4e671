package effect

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"imgfx/pkg/imageio"
)

// NoValue stands in for a parameter or output that was not given.
const NoValue = "no_value"

const (
	DefaultSigma      = 2.0
	DefaultBrightness = 100

	// MaxSigma bounds the blur kernel, whose radius is ceil(3*sigma).
	MaxSigma = 1000.0
)

var ErrBadParam = errors.New("bad parameter")

var cropPattern = regexp.MustCompile(`^(\d+),(\d+),(\d+),(\d+)$`)

// Request is one resolved invocation. Build it with NewRequest and do not
// change it afterwards.
type Request struct {
	Input  string
	Output string
	Effect string
	Param  string
}

// NewRequest fills in the defaults for output and param.
func NewRequest(input, param, output, effect string) *Request {
	return &Request{
		Input:  input,
		Output: lo.Ternary(output == "" || output == NoValue, imageio.OutputName(input), output),
		Effect: effect,
		Param:  lo.Ternary(param == "", NoValue, param),
	}
}

func (r *Request) HasParam() bool {
	return r.Param != NoValue
}

func (r *Request) Summary() string {
	return fmt.Sprintf("input %s output %s sigma %s", r.Input, r.Output, r.Param)
}

// Sigma is the blur parameter, DefaultSigma when absent.
func (r *Request) Sigma() (float64, error) {
	if !r.HasParam() {
		return DefaultSigma, nil
	}
	return ParseSigma(r.Param)
}

// Brightness is the brighten delta, DefaultBrightness when absent.
func (r *Request) Brightness() (int, error) {
	if !r.HasParam() {
		return DefaultBrightness, nil
	}
	return ParseBrightness(r.Param)
}

// ParseSigma accepts finite floats up to MaxSigma in magnitude.
func ParseSigma(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > MaxSigma {
		return 0, errors.Wrap(ErrBadParam, "sigma should be a float value")
	}
	return v, nil
}

// ParseBrightness accepts a 32 bit signed delta.
func ParseBrightness(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.Wrap(ErrBadParam, "sigma should be an integer value")
	}
	return int(v), nil
}

// CropRect parses "x,y,width,height".
func (r *Request) CropRect() (Rect, error) {
	return ParseRect(r.Param)
}

type Rect struct {
	X, Y, Width, Height uint32
}

func ParseRect(s string) (Rect, error) {
	m := cropPattern.FindStringSubmatch(s)
	if m == nil {
		return Rect{}, errors.Wrap(ErrBadParam, "sigma should be x,y,width,height")
	}

	var vs [4]uint32
	for i, name := range []string{"x", "y", "width", "height"} {
		v, err := strconv.ParseUint(m[i+1], 10, 32)
		if err != nil {
			return Rect{}, errors.Wrapf(ErrBadParam, "%s should be unsigned integer", name)
		}
		vs[i] = uint32(v)
	}

	return Rect{X: vs[0], Y: vs[1], Width: vs[2], Height: vs[3]}, nil
}
