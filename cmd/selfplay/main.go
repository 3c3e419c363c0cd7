package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/game"
	"github.com/freeeve/greedychess/internal/logx"
	"github.com/freeeve/greedychess/internal/store"
)

func main() {
	var (
		startFEN   = flag.String("fen", board.StartFEN, "starting placement (uppercase = Black)")
		maxPlies   = flag.Int("max-plies", 200, "stop after this many plies (0 = until a king falls)")
		outputPath = flag.String("output", "-", "PGN output file, .zst compresses (- = stdout)")
		statePath  = flag.String("state", "", "snapshot file for the final position (empty = none)")
		logLevel   = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	level, err := logx.ParseLevel(*logLevel)
	logger := logx.NewLogger(os.Stderr, level)
	if err != nil {
		logger.Warn().Err(err).Msg("using info level")
	}
	if _, err := board.ParseFENStrict(*startFEN); err != nil {
		logger.Fatal().Err(err).Str("fen", *startFEN).Msg("invalid starting position")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctrl := game.New(game.Config{StartFEN: *startFEN, Logger: logger})
	startTime := time.Now()
	moves := play(ctx, ctrl, *maxPlies, logger)
	result := resultOf(ctrl)

	logger.Info().
		Int("plies", len(moves)).
		Str("result", result).
		Dur("elapsed", time.Since(startTime)).
		Msg("self-play complete")

	if err := writeOutput(*outputPath, *startFEN, moves, result); err != nil {
		logger.Fatal().Err(err).Msg("write PGN")
	}

	if *statePath != "" {
		snapshots, err := store.NewSnapshotStore(*statePath, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("open snapshot store")
		}
		defer snapshots.Close()
		if err := snapshots.Save(ctrl.State()); err != nil {
			logger.Fatal().Err(err).Msg("save final position")
		}
	}
}

// play lets the greedy player move for both sides until a king falls, the
// ply limit is hit or ctx is cancelled.
func play(ctx context.Context, ctrl *game.Controller, maxPlies int, log zerolog.Logger) []game.LastMove {
	var moves []game.LastMove
	lastLog := time.Now()

	for ctrl.IsPlaying() && (maxPlies <= 0 || len(moves) < maxPlies) {
		if ctx.Err() != nil {
			log.Warn().Int("plies", len(moves)).Msg("interrupted")
			break
		}
		ctrl.SimulateTurn()
		st := ctrl.State()
		// Consecutive moves alternate colors, so an unchanged last move
		// means the side to move had none and lost.
		if st.LastMove == nil || len(moves) > 0 && *st.LastMove == moves[len(moves)-1] {
			break
		}
		moves = append(moves, *st.LastMove)

		if time.Since(lastLog) > 10*time.Second {
			log.Info().Int("plies", len(moves)).Msg("self-play progress")
			lastLog = time.Now()
		}
	}
	return moves
}

func resultOf(ctrl *game.Controller) string {
	if ctrl.IsPlaying() {
		return "*"
	}
	msgs := ctrl.Messages()
	if len(msgs) > 0 && msgs[len(msgs)-1] == game.WinMessage(board.White) {
		return "1-0"
	}
	return "0-1"
}

func writeOutput(path, startFEN string, moves []game.LastMove, result string) error {
	if path == "-" {
		return writePGN(os.Stdout, startFEN, moves, result)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".zst") {
		return writePGN(f, startFEN, moves, result)
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	if err := writePGN(enc, startFEN, moves, result); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// writePGN writes the game with SAN where it exists. Moves that are not
// legal chess, such as a king walking off the board edge, are written in
// UCI form.
func writePGN(w io.Writer, startFEN string, moves []game.LastMove, result string) error {
	var sb strings.Builder
	sb.WriteString("[Event \"Greedy self-play\"]\n")
	fmt.Fprintf(&sb, "[Date \"%s\"]\n", time.Now().UTC().Format("2006.01.02"))
	sb.WriteString("[White \"greedy\"]\n")
	sb.WriteString("[Black \"greedy\"]\n")
	fmt.Fprintf(&sb, "[Result \"%s\"]\n", result)
	if startFEN != board.StartFEN {
		sb.WriteString("[Variant \"greedychess\"]\n")
		fmt.Fprintf(&sb, "[Placement \"%s\"]\n", startFEN)
	}
	sb.WriteString("\n")

	moveNum := 1
	for i, m := range moves {
		if m.Color == board.White {
			fmt.Fprintf(&sb, "%d. ", moveNum)
		} else if i == 0 {
			fmt.Fprintf(&sb, "%d... ", moveNum)
		}
		text := m.SAN
		if text == "" {
			text = m.Move.UCI()
		}
		sb.WriteString(text)
		sb.WriteString(" ")
		if m.Color == board.Black {
			moveNum++
		}
	}
	sb.WriteString(result)
	sb.WriteString("\n\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
