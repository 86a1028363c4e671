package imageio

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"

	"github.com/go-resty/resty/v2"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{
		cli:      resty.New().SetDoNotParseResponse(true),
		log:      logger,
		progress: os.Stderr,
	}
}

// Fetcher downloads remote input images.
type Fetcher struct {
	cli      *resty.Client
	log      *zap.Logger
	progress io.Writer
}

// SetProgress changes where the download bar is drawn, nil hides it.
func (f *Fetcher) SetProgress(w io.Writer) *Fetcher {
	f.progress = w
	return f
}

func (f *Fetcher) Get(u string) ([]byte, error) {
	resp, err := f.cli.R().Get(u)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status())
	}

	var w io.Writer = io.Discard
	if f.progress != nil {
		w = progressbar.NewOptions64(resp.RawResponse.ContentLength,
			progressbar.OptionSetWriter(f.progress),
			progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", u)),
			progressbar.OptionShowBytes(true),
		)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, w), resp.RawBody()); err != nil {
		return nil, err
	}

	f.log.With(zap.String("url", u), zap.Int("bytes", buf.Len())).Debug("downloaded")

	return buf.Bytes(), nil
}

func remoteBase(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return "download.png"
	}
	return path.Base(parsed.Path)
}
