// main is the entry point of the student-records console.
//
// STARTUP SEQUENCE:
//  1. Load configuration (optional YAML file, environment, defaults)
//  2. Initialise the logger on stderr so it never mixes with the console
//  3. Open the record store selected by storage.backend
//  4. Register the command handlers
//  5. Run the command loop on stdin/stdout until "exit" or end of input
//
// RUNNING:
//
//	go run ./cmd/student-records
//	go run ./cmd/student-records --config=config/local.yaml
//	STORAGE_BACKEND=sqlite go run ./cmd/student-records
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/console"
	"github.com/aanand-mishra/student-records/internal/console/handlers/student"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env, os.Stderr)
	slog.SetDefault(log)

	log.Info("starting student-records",
		slog.String("env", cfg.Env),
		slog.String("backend", cfg.Backend),
		slog.Int("capacity", cfg.Capacity),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store, closeStore, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	// ── 4. Register Commands ──────────────────────────────────────────────
	mux := console.NewMux()
	student.Register(mux, store)

	// ── 5. Serve ──────────────────────────────────────────────────────────
	if err := mux.Serve(console.New(os.Stdin, os.Stdout)); err != nil {
		log.Error("console stopped", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}

	fmt.Println("Exiting...")
	log.Info("student-records stopped")
}

// openStorage builds the configured backend. The returned close func is
// always safe to call.
func openStorage(cfg *config.Config) (storage.Storage, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := sqlite.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return memory.New(cfg.Capacity), func() {}, nil
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
