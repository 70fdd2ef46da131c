// Package cli implements fieldctl, a command-line front end over the
// delivery store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/dig"

	"field-delivery-sync/internal/app"
	"field-delivery-sync/internal/apperr"
	"field-delivery-sync/internal/config"
	"field-delivery-sync/internal/export"
	"field-delivery-sync/internal/gateway/backend"
	"field-delivery-sync/internal/service/reference"
	"field-delivery-sync/internal/service/store"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

var errUsage = errors.New("usage")

type deps struct {
	dig.In

	Store  *store.Store
	Auth   backend.API
	Refs   *reference.Service
	Export *export.Generator
}

type env struct {
	deps
	out   io.Writer
	stdin io.Reader
	now   func() time.Time
}

type command struct {
	usage string
	// load fetches the collection before run.
	load bool
	run  func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"login":     {usage: "login -u USER [--password PASS]", run: runLogin},
	"logout":    {usage: "logout", run: runLogout},
	"status":    {usage: "status", run: runStatus},
	"list":      {usage: "list", load: true, run: runList},
	"show":      {usage: "show ID", load: true, run: runShow},
	"create":    {usage: "create --vehicle-model M --package P --status S --from A --to B [flags]", run: runCreate},
	"update":    {usage: "update ID [flags]", load: true, run: runUpdate},
	"delete":    {usage: "delete ID", load: true, run: runDelete},
	"process":   {usage: "process ID [flags]", load: true, run: runProcess},
	"unprocess": {usage: "unprocess ID", load: true, run: runUnprocess},
	"export":    {usage: "export [-o FILE]", load: true, run: runExport},
	"reference": {usage: "reference KIND", run: runReference},
}

// Run executes fieldctl with args (without the program name) and returns
// the process exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("fieldctl", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr, fs) }

	cfg, err := config.LoadFrom(fs, args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}
		fmt.Fprintln(stderr, "fieldctl:", err)
		return ExitUsage
	}
	quietLogs(fs, cfg)

	rest := fs.Args()
	if len(rest) == 0 {
		usage(stderr, fs)
		return ExitUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "fieldctl: unknown command %q\n", rest[0])
		usage(stderr, fs)
		return ExitUsage
	}

	container, err := app.NewContainerBuilder().
		WithConfig(func() (*config.Config, error) { return cfg, nil }).
		WithRegistry(prometheus.NewRegistry()).
		Build(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "fieldctl:", err)
		return ExitError
	}
	defer app.Close(container)

	e := &env{out: stdout, stdin: stdin, now: time.Now}
	err = container.Invoke(func(d deps) error {
		e.deps = d
		if cmd.load {
			if err := d.Store.LoadDeliveries(ctx); err != nil {
				return err
			}
		}
		return cmd.run(ctx, e, rest[1:])
	})
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "usage: fieldctl %s\n", cmd.usage)
			return ExitUsage
		}
		fmt.Fprintln(stderr, "fieldctl:", describe(err))
		return ExitError
	}
	return ExitOK
}

// quietLogs keeps store logging out of the way unless asked for.
func quietLogs(fs *pflag.FlagSet, cfg *config.Config) {
	if !fs.Changed("log-level") && os.Getenv("LOG_LEVEL") == "" {
		cfg.Log.Level = "warn"
	}
	if !fs.Changed("log-format") && os.Getenv("LOG_FORMAT") == "" {
		cfg.Log.Format = "console"
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperr.ErrUnauthorized):
		return "not logged in, run: fieldctl login"
	case errors.Is(err, context.DeadlineExceeded):
		return "backend did not answer in time"
	default:
		return err.Error()
	}
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "usage: fieldctl [global flags] COMMAND [args]")
	fmt.Fprintln(w, "\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(w, "\nglobal flags:")
	fmt.Fprint(w, strings.TrimRight(fs.FlagUsages(), "\n")+"\n")
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *pflag.FlagSet, args []string, positional int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != positional {
		return nil, errUsage
	}
	return fs.Args(), nil
}
