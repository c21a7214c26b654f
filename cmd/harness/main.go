package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/webui-harness/internal/application"
	"github.com/eugenenazirov/webui-harness/internal/cases"
	"github.com/eugenenazirov/webui-harness/internal/config"
	"github.com/eugenenazirov/webui-harness/internal/logging"
	"github.com/eugenenazirov/webui-harness/internal/suite"
)

var signalNotify = signal.Notify

type cli struct {
	app       *kingpin.Application
	overrides config.CLIOverrides

	run    *kingpin.CmdClause
	suites []string
	config *kingpin.CmdClause
	serve  *kingpin.CmdClause
}

func newCLI() *cli {
	c := &cli{
		app:       kingpin.New("harness", "Browser UI test harness driven by layered property configuration"),
		overrides: config.CLIOverrides{Defines: map[string]string{}},
	}
	c.app.Flag("config-dir", "Directory searched for property resources before the bundled ones").StringVar(&c.overrides.ConfigDir)
	c.app.Flag("defaults", "Required defaults resource").StringVar(&c.overrides.DefaultsResource)
	c.app.Flag("custom", "Optional custom resource layered over the defaults").StringVar(&c.overrides.CustomResource)
	c.app.Flag("log-level", "Log level (debug, info, warn, error)").StringVar(&c.overrides.LogLevel)
	c.app.Flag("define", "Property override, highest precedence (repeatable)").Short('D').PlaceHolder("KEY=VALUE").StringMapVar(&c.overrides.Defines)

	c.run = c.app.Command("run", "Run browser suites").Default()
	c.run.Arg("suite", fmt.Sprintf("Suites to run (default: all of %v)", cases.Names())).StringsVar(&c.suites)
	c.config = c.app.Command("config", "Print the merged properties")
	c.serve = c.app.Command("serve", "Serve the configuration inspection API")
	return c
}

func main() {
	c := newCLI()
	command := kingpin.MustParse(c.app.Parse(os.Args[1:]))

	settings, err := config.Load(&c.overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(settings.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()
	zap.ReplaceGlobals(logger)

	reg := config.Init(settings, logger)

	if command == c.config.FullCommand() {
		printConfig(os.Stdout, reg)
		return
	}

	app, err := application.New(reg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	switch command {
	case c.serve.FullCommand():
		if err := serve(app, logger); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	default:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		report, err := app.RunSuites(ctx, c.suites...)
		stop()
		if err != nil {
			logger.Fatal("failed to run suites", zap.Error(err))
		}
		printReport(os.Stdout, report)
		if report.Failed() {
			_ = logger.Sync()
			os.Exit(1)
		}
	}
}

func printConfig(w io.Writer, reg *config.Registry) {
	fmt.Fprintln(w, config.DumpBegin)
	for _, line := range config.Lines(reg.Snapshot()) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, config.DumpEnd)
}

func printReport(w io.Writer, report *suite.Report) {
	for _, s := range report.Suites {
		for _, c := range s.Cases {
			status := "PASS"
			if !c.Passed() {
				status = "FAIL"
			}
			fmt.Fprintf(w, "%s %s/%s (%s)\n", status, s.Name, c.Name, c.Duration.Round(time.Millisecond))
			if c.Err != nil {
				fmt.Fprintf(w, "    %v\n", c.Err)
			}
		}
		if s.Err != nil {
			fmt.Fprintf(w, "FAIL %s\n    %v\n", s.Name, s.Err)
		}
	}
	passed, failed := report.Counts()
	fmt.Fprintf(w, "run %s: %d passed, %d failed in %s\n", report.RunID, passed, failed, report.Duration.Round(time.Millisecond))
}

// serve runs the inspection API until a termination signal arrives, then
// drains the server and closes any WebDriver session.
func serve(app *application.App, logger *zap.Logger) error {
	if err := app.Start(); err != nil {
		return err
	}
	shutdown(app.Server(), app.ServerConfig().ShutdownGracePeriod, logger)
	if err := app.Close(); err != nil {
		logger.Warn("failed to close webdriver session", zap.Error(err))
	}
	return nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
