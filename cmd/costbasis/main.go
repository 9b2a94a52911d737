package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carlso70/coinbase-pro-stats/config"
	"github.com/carlso70/coinbase-pro-stats/internal/adapters/coinbase"
	"github.com/carlso70/coinbase-pro-stats/internal/adapters/notify"
	"github.com/carlso70/coinbase-pro-stats/internal/ports"
	"github.com/carlso70/coinbase-pro-stats/internal/stats"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	doNotify := flag.Bool("notify", false, "send one desktop notification per product instead of printing")
	watch := flag.Bool("watch", false, "recompute stats on an interval until interrupted")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

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

	if !cfg.HasCredentials() {
		slog.Error("missing API credentials",
			"hint", "set COINBASE_KEY, COINBASE_PASSPHRASE and COINBASE_SECRET")
		os.Exit(1)
	}

	slog.Info("coinbase-pro-stats starting",
		"config", *configPath,
		"products", cfg.Stats.Products,
		"range_days", cfg.Stats.RangeDays,
		"refresh_ttl", cfg.RefreshTTL(),
		"notify", *doNotify,
		"watch", *watch,
	)

	client := coinbase.NewClient(cfg.API.BaseURL, coinbase.Credentials{
		Key:        cfg.API.Key,
		Passphrase: cfg.API.Passphrase,
		Secret:     cfg.API.Secret,
	})

	aggCfg := stats.DefaultConfig()
	aggCfg.RefreshTTL = cfg.RefreshTTL()
	aggregator := stats.New(aggCfg, client, client, client)

	console := notify.NewConsole()
	var notifier ports.Notifier
	if *doNotify {
		notifier = notify.NewDesktop()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, aggregator, console, notifier, *watch); err != nil {
		slog.Error("stats run failed", "err", err)
		os.Exit(1)
	}
}

// run ejecuta un ciclo, y en modo watch sigue en loop hasta que el
// contexto se cancele.
func run(ctx context.Context, cfg *config.Config, agg ports.StatsComputer, console *notify.Console, notifier ports.Notifier, watch bool) error {
	if err := runOnce(ctx, cfg, agg, console, notifier); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	ticker := time.NewTicker(cfg.RefreshTTL())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("coinbase-pro-stats stopped")
			return nil
		case <-ticker.C:
			if err := runOnce(ctx, cfg, agg, console, notifier); err != nil {
				slog.Error("stats cycle failed", "err", err)
			}
		}
	}
}

// runOnce calcula los stats sobre la ventana configurada y los presenta.
func runOnce(ctx context.Context, cfg *config.Config, agg ports.StatsComputer, console *notify.Console, notifier ports.Notifier) error {
	begin := time.Now()
	start, end := cfg.Range(begin)

	computed, err := agg.Compute(ctx, cfg.Stats.Products, start, end)
	if err != nil {
		return err
	}

	slog.Info("stats cycle complete",
		"products", len(computed),
		"duration", time.Since(begin).Round(time.Millisecond),
	)

	if notifier == nil {
		console.PrintStats(computed)
		return nil
	}

	for _, stat := range computed {
		if err := notifier.Notify(ctx, stat); err != nil {
			slog.Warn("notifier error", "product", stat.Product, "err", err)
		}
	}
	return nil
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

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
