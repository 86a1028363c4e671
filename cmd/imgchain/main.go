package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"imgfx/internal/logging"
	"imgfx/pkg/imageio"
	"imgfx/pkg/mixer"
)

const prog = "imgchain"

func main() {
	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr))
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "USAGE: %s [--debug] INFILE OUTFILE STEP [ARG] [STEP [ARG]...]\n", prog)
	fmt.Fprintln(w, "steps: blur SIGMA | brighten DELTA | crop X,Y,W,H | rotate 90|180|270 | invert | grayscale")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func run(args []string, afs afero.Fs, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	debug := fs.Bool("debug", false, "set debug")
	logFile := fs.String("log-file", "", "also write logs to this rotated file")

	if err := fs.Parse(args); err != nil {
		usage(stdout, fs)
		return 2
	}

	pos := fs.Args()
	if len(pos) < 3 {
		usage(stdout, fs)
		return 2
	}

	logger := logging.New(logging.Options{Debug: *debug, File: *logFile, Console: stderr})
	defer func() {
		_ = logger.Sync()
	}()

	effs, err := mixer.Parse(pos[2:])
	if err != nil {
		fmt.Fprintln(stderr, err)
		usage(stdout, fs)
		return 2
	}

	m := mixer.NewMixer(logger, mixer.WithEffect(effs...))
	fmt.Fprintf(stdout, "input %s output %s steps %s\n", pos[0], pos[1], strings.Join(m.Names(), ","))

	store := imageio.NewStore(logger, imageio.WithFs(afs),
		imageio.WithFetcher(imageio.NewFetcher(logger).SetProgress(stderr)))

	img, err := store.Load(pos[0])
	if err != nil {
		logger.With(zap.Error(err)).Error("load failed")
		return 1
	}

	out, err := m.Apply(img)
	if err != nil {
		logger.With(zap.Error(err)).Error("apply failed")
		return 1
	}

	if err := store.Save(pos[1], out); err != nil {
		logger.With(zap.Error(err)).Error("save failed")
		return 1
	}

	return 0
}
