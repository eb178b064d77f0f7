package run

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ridge/gate/tlog"
	"github.com/ridge/parallel"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// logFlags are the logging options every binary accepts
type logFlags struct {
	fs      *pflag.FlagSet
	format  string
	color   string
	verbose bool
}

func newLogFlags(name string) *logFlags {
	lf := &logFlags{fs: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	lf.fs.ParseErrorsWhitelist.UnknownFlags = true
	lf.fs.StringVar(&lf.format, "log-format", string(tlog.FormatText), "Log format (json|text)")
	lf.fs.StringVar(&lf.color, "log-color", "auto", "Colored logs (yes|no|auto)")
	lf.fs.BoolVarP(&lf.verbose, "verbose", "v", false, "Enable verbose (debug level) messages")
	// usage is printed by the regular command line parsing
	lf.fs.Usage = func() {}
	return lf
}

// config parses the logging options out of the command line, ignoring the
// rest of it
func (lf *logFlags) config(args []string) (tlog.Config, error) {
	if err := lf.fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return tlog.Config{}, err
	}

	format := tlog.Format(lf.format)
	if format != tlog.FormatJSON && format != tlog.FormatText {
		return tlog.Config{}, fmt.Errorf("invalid --log-format value %q", lf.format)
	}
	var color tlog.Color
	switch lf.color {
	case "", "auto":
		color = tlog.ColorAuto
	case "yes":
		color = tlog.ColorYes
	case "no":
		color = tlog.ColorNo
	default:
		return tlog.Config{}, fmt.Errorf("invalid --log-color value %q", lf.color)
	}
	return tlog.Config{Format: format, Color: color, Verbose: lf.verbose}, nil
}

var cliFlags = newLogFlags(os.Args[0])

func init() {
	// show the logging options in the help of the main command line parser
	pflag.CommandLine.AddFlagSet(cliFlags.fs)
}

// Tool runs the top-level task of your program, watching for signals.
//
// The context passed to the task contains a logger configured from the
// --log-format, --log-color and --verbose options. If an interruption or
// termination signal arrives, the context is closed.
//
// Tool does not return. It exits with code 0 if the task returns nil, and
// with code 1 if the task returns an error.
//
// Any defer handlers installed before calling Tool are ignored, so most or all
// of the main code should be inside the task:
//
//	func main() {
//	    pflag.Parse()
//	    run.Tool(func(ctx context.Context) error {
//	        return parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
//	            spawn("http", parallel.Fail, server.Run)
//	            return nil
//	        })
//	    })
//	}
func Tool(task func(ctx context.Context) error) {
	// os.Exit doesn't run deferred functions, so we'll call it in the first
	// defer which runs last
	var err error
	defer func() {
		var wec WithExitCode
		if errors.As(err, &wec) {
			os.Exit(wec.ExitCode())
		}
		if err != nil {
			os.Exit(1)
		}
	}()

	config, cfgErr := cliFlags.config(os.Args[1:])
	if cfgErr != nil {
		fmt.Fprintln(os.Stderr, cfgErr)
		os.Exit(2)
	}
	ctx := tlog.WithLogger(context.Background(), tlog.New(config))

	err = parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("main", parallel.Exit, task)
		spawn("signals", parallel.Exit, handleSignals)
		return nil
	})
	if err != nil {
		tlog.Get(ctx).Error("Error", zap.Error(err))
	}
}

// Server runs the top-level task of your program similar to Tool.
//
// The difference is in signal handling: if the top-level task exits with
// (possibly wrapped) context.Canceled while handling the signal, the program
// exits with code 0.
//
// Note that any other error returned during signal handling is still considered
// an error and makes Server exit with code 1.
func Server(task func(ctx context.Context) error) {
	Tool(func(ctx context.Context) error {
		err := task(ctx)
		if errors.Is(err, ctx.Err()) {
			return nil
		}
		return err
	})
}

// WithExitCode is an optional interface that can be implemented by an error.
//
// When a (possibly wrapped) error implementing WithExitCode reaches the top
// level, the value returned by the ExitCode method becomes the exit code of the
// process. The default exit code for other errors is 1.
type WithExitCode interface {
	ExitCode() int
}
