package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/eco"
	"github.com/freeeve/greedychess/internal/eval"
	"github.com/freeeve/greedychess/internal/httpapi"
	"github.com/freeeve/greedychess/internal/logx"
	"github.com/freeeve/greedychess/internal/store"
)

// envOr returns the environment value for key, or def if it is unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		// Server
		addr = flag.String("addr", envOr("GREEDYCHESS_ADDR", ":8007"), "listen address")

		// Game
		startFEN  = flag.String("fen", envOr("GREEDYCHESS_FEN", board.StartFEN), "starting placement (uppercase = Black)")
		statePath = flag.String("state", "", "snapshot file for the session (empty = in memory only)")

		// Stockfish
		stockfishPath = flag.String("stockfish", envOr("STOCKFISH_PATH", ""), "path to Stockfish executable (empty = analysis disabled)")
		depth         = flag.Int("analysis-depth", 16, "Stockfish search depth")
		threads       = flag.Int("analysis-threads", 1, "Stockfish threads")
		hashMB        = flag.Int("analysis-hash", 64, "Stockfish hash MB")
		cacheSize     = flag.Int("analysis-cache", 256, "analyses remembered by position")

		// ECO settings
		ecoDir = flag.String("eco-dir", "", "directory containing ECO .tsv files (empty = no opening names)")

		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	level, err := logx.ParseLevel(*logLevel)
	logger := logx.NewLogger(os.Stdout, level)
	if err != nil {
		logger.Warn().Err(err).Msg("using info level")
	}

	if _, err := board.ParseFENStrict(*startFEN); err != nil {
		logger.Fatal().Err(err).Str("fen", *startFEN).Msg("invalid starting position")
	}

	var snapshots *store.SnapshotStore
	if *statePath != "" {
		snapshots, err = store.NewSnapshotStore(*statePath, logger.With().Str("component", "store").Logger())
		if err != nil {
			logger.Fatal().Err(err).Msg("open snapshot store")
		}
		defer snapshots.Close()
		logger.Info().Str("path", *statePath).Msg("opened snapshot store")
	}

	analyzer, err := eval.NewAnalyzer(eval.AnalyzerConfig{
		StockfishPath: *stockfishPath,
		Logger:        logger.With().Str("component", "analyzer").Logger(),
		Depth:         *depth,
		HashMB:        *hashMB,
		Threads:       *threads,
		CacheSize:     *cacheSize,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("start analyzer")
	}
	if analyzer != nil {
		defer analyzer.Close()
	}

	// Load ECO opening database
	var ecoDB *eco.Database
	if *ecoDir != "" {
		ecoDB = eco.NewDatabase()
		if err := ecoDB.LoadDir(*ecoDir); err != nil {
			logger.Warn().Err(err).Str("dir", *ecoDir).Msg("failed to load ECO database")
			ecoDB = nil
		} else {
			logger.Info().
				Int("openings", ecoDB.Count()).
				Int("skipped", ecoDB.Skipped()).
				Msg("ECO database loaded")
		}
	}

	session, err := httpapi.NewSession(httpapi.SessionConfig{
		StartFEN: *startFEN,
		Store:    snapshots,
		Analyzer: analyzer,
		Openings: ecoDB,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("create session")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         *addr,
		Handler:      httpapi.NewRouter(logger, session),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("api server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http server shutdown error")
	}

	logger.Info().Msg("shutdown complete")
}
