package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bornholm/sidenav/internal/config"
	"github.com/bornholm/sidenav/pkg/log"
	"github.com/pkg/errors"

	_ "github.com/bornholm/sidenav/pkg/filesystem/all"
)

var (
	configFile   string = ""
	dumpConfig   bool   = false
	historyLimit int    = 20
)

type command func(ctx context.Context, conf *config.Config, args []string) error

var commands = map[string]command{
	"check":         runCheck,
	"walk":          runWalk,
	"build":         runBuild,
	"serve":         runServe,
	"history":       runHistory,
	"hash-password": runHashPassword,
}

func init() {
	flag.StringVar(&configFile, "config", configFile, "configuration file")
	flag.BoolVar(&dumpConfig, "dump-config", dumpConfig, "dump default configuration file and exit")
	flag.IntVar(&historyLimit, "limit", historyLimit, "maximum number of revisions listed by the history command")

	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [flags] <command> [args]\n\n", os.Args[0])
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  check          validate the sidebar and report issues")
		fmt.Fprintln(out, "  walk           print the sidebar nodes in navigation order")
		fmt.Fprintln(out, "  build          write the site configuration and record a revision")
		fmt.Fprintln(out, "  serve          start the preview server")
		fmt.Fprintln(out, "  history        list the recorded sidebar revisions")
		fmt.Fprintln(out, "  hash-password  hash a webdav user password given as argument, or read from stdin")
		fmt.Fprintln(out, "\nFlags:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conf := config.NewDefaultConfig()

	if dumpConfig {
		if err := config.Dump(os.Stdout, conf); err != nil {
			slog.ErrorContext(ctx, "could not dump config file", log.Error(errors.WithStack(err)))
			os.Exit(1)
		}

		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cmd, exists := commands[args[0]]
	if !exists {
		fmt.Fprintf(os.Stderr, "unknown command '%s'\n\n", args[0])
		flag.Usage()
		os.Exit(2)
	}

	if configFile != "" {
		if err := config.LoadFile(configFile, conf); err != nil {
			slog.ErrorContext(ctx, "could not parse config file", log.Error(errors.WithStack(err)), slog.String("file", configFile))
			os.Exit(1)
		}
	}

	if err := config.Interpolate(conf); err != nil {
		slog.ErrorContext(ctx, "could not interpolate config file", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	logger := slog.New(log.ContextHandler{
		Handler: newLogHandler(os.Stderr, conf.Logger),
	})

	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(slog.Level(conf.Logger.Level))

	ctx = log.WithAttrs(ctx, slog.String("command", args[0]))

	if err := cmd(ctx, conf, args[1:]); err != nil {
		if errors.Is(err, errFailed) {
			os.Exit(1)
		}

		slog.ErrorContext(ctx, "command failed", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}
}

func newLogHandler(w io.Writer, conf config.Logger) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     slog.Level(conf.Level),
		AddSource: true,
	}

	if conf.Format == config.LoggerFormatJSON {
		return slog.NewJSONHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}
