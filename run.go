package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/agentflare-ai/go-docrst/autodoc"
	"github.com/agentflare-ai/go-docrst/gosource"
	"github.com/agentflare-ai/go-docrst/manifest"
)

type options struct {
	showCmd      bool
	outputPath   string
	title        string
	preambleFile string
	lang         string
	manifestPath string
	verbose      bool
}

type cliApp struct {
	stdout io.Writer
	stderr io.Writer
	opts   options
}

func run(argv []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(normalizeLegacyArgs(argv))
	return cmd.Execute()
}

func (app *cliApp) execute(ctx context.Context, positionals []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := app.opts
	log := newLogger(app.stderr, opts.verbose)
	if opts.title != "" && opts.preambleFile != "" {
		return errors.New("-title cannot be combined with -preamble-file")
	}
	if opts.manifestPath != "" && len(positionals) > 0 {
		return errors.New("-manifest does not accept a package argument")
	}

	preamble, err := app.preamble()
	if err != nil {
		return err
	}
	mod, err := app.loadModule(ctx, positionals, log)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"module": mod.Name(), "output": displayPath(opts.outputPath)}).Info("writing rst")

	emitOpts := autodoc.Options{
		Preamble: preamble,
		Lang:     opts.lang,
		Logger:   log,
	}
	return writeOutput(opts.outputPath, app.stdout, func(w io.Writer) error {
		return autodoc.Emit(w, mod, emitOpts)
	})
}

func (app *cliApp) loadModule(ctx context.Context, positionals []string, log logrus.FieldLogger) (autodoc.Module, error) {
	if app.opts.manifestPath != "" {
		log.WithField("manifest", app.opts.manifestPath).Debug("loading manifest")
		return manifest.Load(app.opts.manifestPath)
	}
	pattern := "."
	if len(positionals) == 1 {
		pattern = positionals[0]
	}
	log.WithField("pattern", pattern).Debug("loading packages")
	return gosource.Load(ctx, pattern, gosource.Config{
		IncludeMain: app.opts.showCmd,
		Logger:      log,
	})
}

func (app *cliApp) preamble() (string, error) {
	switch {
	case app.opts.title != "":
		rule := strings.Repeat("=", utf8.RuneCountInString(app.opts.title))
		return app.opts.title + "\n" + rule + "\n\n", nil
	case app.opts.preambleFile != "":
		data, err := os.ReadFile(app.opts.preambleFile)
		if err != nil {
			return "", fmt.Errorf("read preamble: %w", err)
		}
		return string(data), nil
	default:
		return "", nil
	}
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}

// writeOutput hands emit the sink for path and closes it on every return
// path. A close error is reported only when emit itself succeeded.
func writeOutput(path string, stdout io.Writer, emit func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return emit(stdout)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err := emit(bw); err != nil {
		return err
	}
	return bw.Flush()
}

var legacyLongFlagSet = map[string]struct{}{
	"cmd":           {},
	"title":         {},
	"preamble-file": {},
	"lang":          {},
	"manifest":      {},
	"output":        {},
	"verbose":       {},
}

func normalizeLegacyArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	modified := false
	converted := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			converted = append(converted, arg)
			converted = append(converted, args[i+1:]...)
			if i != len(args)-1 {
				modified = true
			}
			break
		}
		if !strings.HasPrefix(arg, "-") || strings.HasPrefix(arg, "--") || arg == "-" {
			converted = append(converted, arg)
			continue
		}
		if len(arg) == 2 {
			converted = append(converted, arg)
			continue
		}
		if idx := strings.Index(arg, "="); idx > 0 {
			name := arg[1:idx]
			if _, ok := legacyLongFlagSet[name]; ok {
				converted = append(converted, "--"+name+arg[idx:])
				modified = true
				continue
			}
		}
		name := arg[1:]
		if _, ok := legacyLongFlagSet[name]; ok {
			converted = append(converted, "--"+name)
			modified = true
			continue
		}
		converted = append(converted, arg)
	}
	if !modified && len(converted) == len(args) {
		return args
	}
	return converted
}
