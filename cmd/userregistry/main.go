package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"github.com/toyz/userregistry/internal/api"
	"github.com/toyz/userregistry/internal/config"
	"github.com/toyz/userregistry/internal/shell"
	"github.com/toyz/userregistry/internal/utils"
	"github.com/toyz/userregistry/pkg/web"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	adapter    string
	port       int
	configPath string
	verbose    bool
	quiet      bool
	help       bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("userregistry", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.adapter, "adapter", "", "Web server adapter to use (echo, gin, or fiber)")
	fs.IntVar(&opts.port, "port", 0, "Port to run the server on")
	fs.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose output")
	fs.BoolVar(&opts.quiet, "quiet", false, "Only show errors")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	fs.Usage = func() { usage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if opts.help {
		fs.Usage()
		return 0
	}

	level := utils.DiagnosticInfo
	switch {
	case opts.quiet:
		level = utils.DiagnosticError
	case opts.verbose:
		level = utils.DiagnosticVerbose
	}
	diag := utils.NewDiagnosticSystemWithWriters(level, stdout, stderr)

	cfg, err := loadConfig(opts)
	if err != nil {
		diag.Error("%v", err)
		return 1
	}

	switch cmd := fs.Arg(0); cmd {
	case "", "serve":
		return serve(cfg, diag)
	case "shell":
		if !opts.verbose {
			cfg.LogLevel = "warn"
		}
		return runShell(cfg, diag, stdin, stdout)
	default:
		diag.Error("unknown command %q", cmd)
		fs.Usage()
		return 2
	}
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [options] [serve|shell]\n\n", fs.Name())
	fmt.Fprintf(w, "In-memory user registry served over HTTP or an interactive shell.\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nEnvironment:\n")
	fmt.Fprintf(w, "  %sADAPTER, %sPORT, %sLOG_LEVEL, ... override the config file\n",
		config.EnvPrefix, config.EnvPrefix, config.EnvPrefix)
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  %s -adapter=gin -port=3000\n", fs.Name())
	fmt.Fprintf(w, "  %s -config=userregistry.yaml shell\n", fs.Name())
}

// loadConfig layers command line flags over the loaded config
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Read(opts.configPath, nil)
	if err != nil {
		return nil, err
	}
	if opts.adapter != "" {
		cfg.Adapter = opts.adapter
		cfg.SetFrom("flags", "adapter")
	}
	if opts.port != 0 {
		cfg.Port = opts.port
		cfg.SetFrom("flags", "port")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serve(cfg *config.Config, diag *utils.DiagnosticSystem) int {
	var routes *web.RouteRecorder
	app := fx.New(
		fxLogger(),
		coreModule(cfg),
		serverModule(),
		fx.StopTimeout(cfg.ShutdownTimeout),
		fx.Populate(&routes),
	)
	if err := app.Err(); err != nil {
		diag.Error("failed to build application: %v", err)
		return 1
	}

	diag.Section("User Registry")
	diag.List("adapter: %s", cfg.Adapter)
	diag.List("listening on http://%s", cfg.Address())
	if cfg.MetricsAddr != "" {
		diag.List("metrics on http://%s/metrics", cfg.MetricsAddr)
	}
	diag.Indent()
	for _, r := range routes.GetAllRoutes() {
		diag.List("%-6s %s", r.Method, r.Path.Raw())
	}
	diag.Unindent()

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		diag.Error("failed to start: %v", err)
		return 1
	}

	sig := <-app.Wait()
	if sig.Signal != nil {
		diag.Info("received %s, shutting down", sig.Signal)
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		diag.Error("shutdown failed: %v", err)
		return 1
	}
	return sig.ExitCode
}

func runShell(cfg *config.Config, diag *utils.DiagnosticSystem, stdin io.Reader, stdout io.Writer) int {
	var a *api.API
	app := fx.New(fx.NopLogger, coreModule(cfg), fx.Populate(&a))
	if err := app.Err(); err != nil {
		diag.Error("failed to build shell: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	diag.Section("User Registry Shell")
	diag.Info("%d users loaded, type 'help' for commands", a.CountUsers())

	if err := shell.New(a, diag, stdout).Run(ctx, stdin); err != nil && !errors.Is(err, context.Canceled) {
		diag.Error("%v", err)
		return 1
	}
	return 0
}
