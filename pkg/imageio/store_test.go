package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func sample() image.Image {
	img := imaging.New(4, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	img.Set(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	return img
}

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	fs := afero.NewMemMapFs()
	logger := zaptest.NewLogger(t)
	return NewStore(logger, WithFs(fs), WithFetcher(NewFetcher(logger).SetProgress(nil))), fs
}

func TestSaveLoad(t *testing.T) {
	s, fs := newTestStore(t)

	require.NoError(t, s.Save("pics/a.png", sample()))

	exists, err := afero.Exists(fs, "pics/a.png")
	require.NoError(t, err)
	assert.True(t, exists)

	// temp file is gone after the rename
	entries, err := afero.ReadDir(fs, "pics")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	img, err := s.Load("pics/a.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())

	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{1, 2, 3}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestSaveFormatFromExtension(t *testing.T) {
	s, fs := newTestStore(t)

	require.NoError(t, s.Save("a.jpg", sample()))

	bs, err := afero.ReadFile(fs, "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, bs[:2])

	err = s.Save("a.unknown", sample())
	assert.ErrorIs(t, err, imaging.ErrUnsupportedFormat)

	exists, _ := afero.Exists(fs, "a.unknown")
	assert.False(t, exists)
}

func TestLoadMissing(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Load("nope.png")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "open nope.png failed")
}

func TestLoadGarbage(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, "bad.png", []byte("not an image"), 0644))

	_, err := s.Load("bad.png")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode bad.png failed")
}

func TestLoadRemote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sample()))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img/cat.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	s, _ := newTestStore(t)

	img, err := s.Load(srv.URL + "/img/cat.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = s.Load(srv.URL + "/img/dog.png")
	assert.Error(t, err)
}

func TestOutputName(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"dyson.png", "out_dyson.png"},
		{"imgs/pens.png", "out_imgs/pens.png"},
		{"https://example.com/a/b/cat.jpg?x=1", "out_cat.jpg"},
		{"http://example.com/", "out_download.png"},
	}

	for _, c := range cases {
		assert.Equal(t, c.out, OutputName(c.in), c.in)
	}
}
