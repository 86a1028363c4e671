package effect

import (
	"github.com/pkg/errors"
)

// Kind names one of the effects the dispatcher can run.
type Kind int

const (
	Blur Kind = iota + 1
	Brighten
	Crop
	Fractal
)

var ErrUnknownEffect = errors.New("unknown effect")

var kindNames = map[Kind]string{
	Blur:     "blur",
	Brighten: "brighten",
	Crop:     "crop",
	Fractal:  "fractal",
}

// Kinds lists every known effect in declaration order.
func Kinds() []Kind {
	return []Kind{Blur, Brighten, Crop, Fractal}
}

func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownEffect, "%q", name)
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}
