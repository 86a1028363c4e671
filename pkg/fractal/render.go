package fractal

import (
	"context"
	"image"
	"io"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"imgfx/pkg/bitmap"
)

type Option func(r *Renderer)

// WithWorkers sets how many goroutines share the rows, n <= 0 means one per CPU.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		r.workers = n
	}
}

// WithProgress reports finished rows on w.
func WithProgress(w io.Writer) Option {
	return func(r *Renderer) {
		r.progress = w
	}
}

func WithSize(width, height int) Option {
	return func(r *Renderer) {
		r.width = width
		r.height = height
	}
}

func NewRenderer(logger *zap.Logger, opts ...Option) *Renderer {
	r := &Renderer{
		logger: logger,
		width:  Width,
		height: Height,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.workers <= 0 {
		r.workers = runtime.NumCPU()
	}

	return r
}

type Renderer struct {
	logger   *zap.Logger
	width    int
	height   int
	workers  int
	progress io.Writer
}

// Render computes every pixel once. Workers take whole rows, so no two of
// them ever write the same bytes of the raster.
func (r *Renderer) Render(ctx context.Context) (*bitmap.RGB, error) {
	img := bitmap.NewRGB(image.Rect(0, 0, r.width, r.height))

	var bar *progressbar.ProgressBar
	if r.progress != nil {
		bar = progressbar.NewOptions(r.height,
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription("Rendering fractal"),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				_, _ = io.WriteString(r.progress, "\n")
			}),
		)
	}

	rows := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(rows)
		for y := 0; y < r.height; y++ {
			select {
			case rows <- y:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < r.workers; i++ {
		g.Go(func() error {
			for y := range rows {
				for x := 0; x < r.width; x++ {
					img.SetRGB(x, y, Pixel(x, y, r.width, r.height))
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.With(
		zap.Int("width", r.width),
		zap.Int("height", r.height),
		zap.Int("workers", r.workers),
	).Debug("fractal rendered")

	return img, nil
}
