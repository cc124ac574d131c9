package build

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"mkc/common"
	"mkc/config"
	"mkc/report"
	"mkc/trace"
	"mkc/walk"
)

// Options selects the inputs and the output of a build.
type Options struct {
	// TracePath is the path to the recorded notification stream.
	TracePath string

	// ConfigPath is the path to the runtime configuration.  If it is empty,
	// the configuration file next to the trace is used if there is one.
	ConfigPath string

	// OutputPath is the path the program is written to.  If it is empty, the
	// program is written to standard out.
	OutputPath string
}

// Compile walks a trace and returns the generated program.  Compile errors are
// returned as is so that callers can inspect them.
func Compile(ctx context.Context, tr *trace.Trace, rt *config.Runtime) (string, error) {
	span, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "source", tr.Source, "notifications", len(tr.Commands))
	defer span.Finish()

	w := walk.New(tr.Source, rt)
	for i, cmd := range tr.Commands {
		if err := w.Handle(cmd); err != nil {
			if _, ok := report.KindOf(err); ok {
				return "", err
			}

			return "", errors.Wrap(err, "notification no. %d (%v)", i+1, cmd.Kind)
		}
	}

	if !w.Ended() {
		return "", errors.New("trace of %s ends before the end of the program", tr.Source)
	}

	tlog.SpanFromContext(ctx).Printw("generated program", "size", len(w.Program()))
	return w.Program(), nil
}

// Build loads the configuration and the trace selected by opts, compiles the
// trace, and writes out the program.
func Build(ctx context.Context, opts Options, stdout io.Writer) error {
	span, ctx := tlog.SpawnFromContextAndWrap(ctx, "build", "trace", opts.TracePath)
	defer span.Finish()

	rt, err := loadRuntime(ctx, opts)
	if err != nil {
		return err
	}

	if ext := filepath.Ext(opts.TracePath); ext != common.TraceFileExt && ext != ".toml" {
		report.ReportWarning("Trace", "unexpected extension `%s` for trace file %s", ext, opts.TracePath)
	}

	tr, err := trace.Load(opts.TracePath)
	if err != nil {
		return err
	}

	program, err := Compile(ctx, tr, rt)
	if err != nil {
		return err
	}

	if opts.OutputPath == "" {
		if _, err := io.WriteString(stdout, program); err != nil {
			return errors.Wrap(err, "write program")
		}

		return nil
	}

	if err := os.WriteFile(opts.OutputPath, []byte(program), 0o644); err != nil {
		return errors.Wrap(err, "write program")
	}

	span.Printw("wrote program", "path", opts.OutputPath)
	return nil
}

// loadRuntime loads the runtime configuration of a build.
func loadRuntime(ctx context.Context, opts Options) (*config.Runtime, error) {
	path := opts.ConfigPath
	if path == "" {
		path = filepath.Join(filepath.Dir(opts.TracePath), common.ConfigFileName)

		if _, err := os.Stat(path); err != nil {
			return config.DefaultRuntime(), nil
		}
	}

	tlog.SpanFromContext(ctx).Printw("load config", "path", path)
	return config.LoadRuntime(path)
}
