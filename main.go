package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"promptforge/config"
	"promptforge/prompt/extract"
	"promptforge/prompt/gemini"
	"promptforge/prompt/history"
	"promptforge/prompt/ingest"
	"promptforge/prompt/session"
	"promptforge/tui"
)

func init() {
	// Load .env file if exists
	_ = godotenv.Load()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	if err != nil {
		return fmt.Errorf("init model client: %w", err)
	}

	kv, closeKV, err := newKV(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init history storage: %w", err)
	}
	defer closeKV()

	store, err := history.NewStore(ctx, kv, log)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	coord := ingest.NewCoordinator(extract.DefaultRegistry(), cfg.Limits, log)
	defer coord.Shutdown()

	runtime := session.NewRuntime(client, store, log)
	defer runtime.Shutdown()

	program := tea.NewProgram(
		tui.InitialModel(runtime, coord, client),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// newLogger writes structured logs to the configured file. Without a path it
// stays silent so log lines never bleed into the terminal UI.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

// newKV picks redis when an address is configured, otherwise the local file
// store.
func newKV(ctx context.Context, cfg config.Config) (history.KV, func(), error) {
	if cfg.RedisAddr != "" {
		kv, err := history.NewRedisKV(ctx, history.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { _ = kv.Close() }, nil
	}

	kv, err := history.NewFileKV(cfg.HistoryPath)
	if err != nil {
		return nil, nil, err
	}
	return kv, func() {}, nil
}
