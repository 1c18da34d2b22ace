package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/reoring/yamltree"
	"github.com/reoring/yamltree/source/gojson"
)

type globalOptions struct {
	configPath  string
	color       string
	verbose     bool
	inputFormat string
}

// env is the per-invocation state shared by all subcommands.
type env struct {
	cfg     yamltree.Config
	yaml    *yamltree.Yaml
	json    *yamltree.Yaml
	format  string
	logger  log.Logger
	palette palette
	stdout  io.Writer
	stderr  io.Writer
	stdin   io.Reader
}

func (o *globalOptions) setup(cmd *cobra.Command) (*env, error) {
	logger := newLogger(cmd.ErrOrStderr(), o.verbose)

	cfg := yamltree.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = loadConfigFile(o.configPath); err != nil {
			return nil, err
		}
		level.Debug(logger).Log("msg", "loaded config", "path", o.configPath)
	}

	switch o.inputFormat {
	case "auto", "yaml", "json":
	default:
		return nil, errors.Errorf("unknown input format %q (want auto, yaml or json)", o.inputFormat)
	}

	colorOn, err := colorEnabled(o.color, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	y, err := yamltree.New(cfg, yamltree.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "configure reader")
	}
	j, err := yamltree.New(cfg, yamltree.WithLogger(logger), yamltree.WithDriver(gojson.Driver()))
	if err != nil {
		return nil, errors.Wrap(err, "configure JSON reader")
	}
	return &env{
		cfg:     cfg,
		yaml:    y,
		json:    j,
		format:  o.inputFormat,
		logger:  logger,
		palette: newPalette(colorOn),
		stdout:  cmd.OutOrStdout(),
		stderr:  cmd.ErrOrStderr(),
		stdin:   cmd.InOrStdin(),
	}, nil
}

// readerFor picks the event driver for path. In auto mode files ending in
// .json are read as JSON and everything else, stdin included, as YAML.
func (e *env) readerFor(path string) *yamltree.Yaml {
	switch e.format {
	case "json":
		return e.json
	case "yaml":
		return e.yaml
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return e.json
	}
	return e.yaml
}

func (e *env) readInput(path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(e.stdin)
		return b, errors.Wrap(err, "read stdin")
	}
	b, err := os.ReadFile(path)
	return b, errors.Wrapf(err, "read %s", path)
}

// parseFile reads path and parses it. The raw bytes are returned even when
// parsing fails so diagnostics can quote the offending line.
func (e *env) parseFile(path string) (yamltree.Node, []byte, error) {
	data, err := e.readInput(path)
	if err != nil {
		return nil, nil, err
	}
	n, err := e.readerFor(path).ParseBytesToNode(data)
	return n, data, err
}

func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	}
	return false, errors.Errorf("unknown color mode %q (want auto, on or off)", mode)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
