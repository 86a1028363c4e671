package imageio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"github.com/rs/xid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

type Option func(s *Store)

// WithFs replaces the OS filesystem, mostly for tests.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

func WithFetcher(f *Fetcher) Option {
	return func(s *Store) {
		s.fetcher = f
	}
}

func NewStore(logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		fs:  afero.NewOsFs(),
		log: logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.fetcher == nil {
		s.fetcher = NewFetcher(logger)
	}

	return s
}

type Store struct {
	fs      afero.Fs
	fetcher *Fetcher
	log     *zap.Logger
}

// Load reads and decodes the image at path, http(s) URLs are downloaded.
func (s *Store) Load(path string) (image.Image, error) {
	var bs []byte
	var err error

	if IsRemote(path) {
		bs, err = s.fetcher.Get(path)
	} else {
		bs, err = afero.ReadFile(s.fs, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s failed: %w", path, err)
	}

	img, err := imaging.Decode(bytes.NewReader(bs), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s failed: %w", path, err)
	}

	s.log.With(
		zap.String("path", path),
		zap.String("size", bytesize.New(float64(len(bs))).String()),
		zap.Int("w", img.Bounds().Dx()),
		zap.Int("h", img.Bounds().Dy()),
	).Debug("image loaded")

	return img, nil
}

// Save encodes img in the format named by the extension of path. The data
// goes to a temp file in the same directory first, which is then renamed
// over path.
func (s *Store) Save(path string, img image.Image) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("save %s failed: %w", path, err)
	}

	tmp := filepath.Join(filepath.Dir(path), "."+xid.New().String()+".tmp")

	f, err := s.fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s failed: %w", path, err)
	}

	cw := &countWriter{w: f}
	if err := imaging.Encode(cw, img, format); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("encode %s failed: %w", path, err)
	}

	if err := f.Close(); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("write %s failed: %w", path, err)
	}

	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("write %s failed: %w", path, err)
	}

	s.log.With(
		zap.String("path", path),
		zap.String("format", format.String()),
		zap.String("size", bytesize.New(float64(cw.n)).String()),
	).Debug("image saved")

	return nil
}

// OutputName is the default output for input: the input prefixed with
// "out_", or for URLs the last path element prefixed with "out_".
func OutputName(input string) string {
	if IsRemote(input) {
		return "out_" + remoteBase(input)
	}
	return "out_" + input
}

func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
