package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
)

// ErrUsage marks command lines that are missing required arguments.
var ErrUsage = errors.New("usage")

const (
	EnvDebug    = "IMGFX_DEBUG"
	EnvLogFile  = "IMGFX_LOG_FILE"
	EnvWorkers  = "IMGFX_WORKERS"
	EnvProgress = "IMGFX_PROGRESS"
)

type Config struct {
	Input  string
	Param  string
	Output string
	Effect string

	Debug    bool
	LogFile  string
	Workers  int
	Progress bool
}

// LoadEnv reads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s failed: %w", f, err)
		}
	}
	return nil
}

// Parse reads "INFILE [SIGMA] -o OUTFILE -e EFFECT" plus the tuning flags.
// Environment variables provide defaults for the tuning flags.
func Parse(prog string, args []string, getenv func(string) string, stderr io.Writer) (*Config, error) {
	c := &Config{
		Debug:    envBool(getenv(EnvDebug)),
		LogFile:  getenv(EnvLogFile),
		Workers:  envInt(getenv(EnvWorkers)),
		Progress: envBool(getenv(EnvProgress)),
	}

	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&c.Output, "output", "o", "", "output file, defaults to out_INFILE")
	fs.StringVarP(&c.Effect, "effect", "e", "", "effect name: blur, brighten, crop or fractal")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "set debug")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "also write logs to this rotated file")
	fs.IntVar(&c.Workers, "workers", c.Workers, "fractal row workers, 0 for one per CPU")
	fs.BoolVar(&c.Progress, "progress", c.Progress, "show a progress bar while rendering")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(ErrUsage, err.Error())
	}

	pos := fs.Args()
	switch {
	case len(pos) == 0:
		return nil, errors.Wrap(ErrUsage, "INFILE is required")
	case len(pos) > 2:
		return nil, errors.Wrapf(ErrUsage, "unexpected argument %q", pos[2])
	}

	c.Input = pos[0]
	if len(pos) == 2 {
		c.Param = pos[1]
	}

	if c.Effect == "" {
		return nil, errors.Wrap(ErrUsage, "-e EFFECT is required")
	}

	return c, nil
}

func envBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func envInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
