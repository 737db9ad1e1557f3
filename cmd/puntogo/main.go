// Command puntogo is a background daemon that watches physical keyboard
// input, detects text typed in the wrong keyboard layout, and corrects it in
// place. See SIGHUP for config reload and SIGINT/SIGTERM for shutdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/leonard/asahi-map/internal/config"
	"github.com/leonard/asahi-map/internal/service"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	uinputPath := flag.String("uinput-device", "/dev/uinput", "path to the uinput device node")
	soundAssetsDir := flag.String("sound-assets", "/usr/share/puntogo/sounds", "directory containing click/switch/error .wav files")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("puntogo %s (%s)\n", version, commit)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("puntogo starting", "version", version, "config_dir", cfg.Dir())

	svc, err := service.New(logger, cfg, *uinputPath, *soundAssetsDir)
	if err != nil {
		logger.Error("failed to initialize service", "error", err)
		logger.Error("make sure you have write access to the uinput device")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				if err := svc.Reload(); err != nil {
					logger.Error("failed to reload config", "error", err)
				}
			case syscall.SIGINT, syscall.SIGTERM:
				logger.Info("shutting down...")
				cancel()
				return
			}
		}
	}()

	if err := svc.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("service exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("puntogo stopped")
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
