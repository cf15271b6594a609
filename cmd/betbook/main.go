package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/alejandrodnm/betbook/config"
	"github.com/alejandrodnm/betbook/internal/adapters/notify"
	"github.com/alejandrodnm/betbook/internal/adapters/storage"
	"github.com/alejandrodnm/betbook/internal/application/ledger"
	"github.com/alejandrodnm/betbook/internal/application/notebook"
)

// app agrupa las dependencias que comparten todos los subcomandos.
type app struct {
	cfg      *config.Config
	store    *storage.SQLiteStorage
	books    *notebook.Service
	ledger   *ledger.Service
	reporter *notify.Console
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"notebook-add": {"create a notebook", runNotebookAdd},
	"notebooks":    {"list notebooks in order", runNotebooks},
	"notebook-rm":  {"delete a notebook and its wagers", runNotebookRm},
	"reorder":      {"reorder notebooks: reorder <id> <id> ...", runReorder},
	"add":          {"add a wager to a notebook", runAdd},
	"edit":         {"edit a wager in place", runEdit},
	"settle":       {"settle a wager as won|lost|push", runSettle},
	"wager-rm":     {"delete a wager", runWagerRm},
	"summary":      {"performance per notebook, combined and bankroll", runSummary},
	"search":       {"filter and sort the wagers of a notebook", runSearch},
	"hedge":        {"hedge stake for an open bet", runHedge},
	"kelly":        {"edge and Kelly stake against a reference line", runKelly},
	"account-add":  {"create a sportsbook or casino account", runAccountAdd},
	"accounts":     {"list ledger accounts", runAccounts},
	"ledger-add":   {"record the daily result of an account", runLedgerAdd},
	"casino":       {"partially update a casino day", runCasino},
	"ledger":       {"daily ledger breakdown and totals", runLedger},
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Debug("betbook starting",
		"config", *configPath,
		"command", flag.Arg(0),
		"dsn", cfg.Storage.DSN,
	)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	a := &app{
		cfg:   cfg,
		store: store,
		books: notebook.New(notebook.Config{
			UnitSize:         cfg.Engine.UnitSize,
			StartingBankroll: cfg.Engine.StartingBankroll,
			SummaryWorkers:   cfg.Storage.SummaryWorkers,
		}, store),
		ledger:   ledger.New(store),
		reporter: notify.NewConsole(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.run(ctx, a, flag.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("command failed", "command", flag.Arg(0), "err", err)
		store.Close()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: betbook [-config path] [-verbose] [-format text|json] <command> [flags]\n\ncommands:\n")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-13s %s\n", name, commands[name].usage)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// stdout queda para las tablas; los logs van a stderr
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
