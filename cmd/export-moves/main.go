package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/game"
	"github.com/freeeve/greedychess/internal/notation"
	"github.com/freeeve/greedychess/internal/store"
)

func main() {
	var (
		statePath  = flag.String("state", "", "snapshot file to read (empty = use -fen)")
		startFEN   = flag.String("fen", board.StartFEN, "placement to score when no snapshot is given")
		black      = flag.Bool("black", false, "with -fen, score Black's moves")
		outputPath = flag.String("output", "-", "output CSV file (- = stdout)")
	)
	flag.Parse()

	st, err := loadState(*statePath, *startFEN, !*black)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load position: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outputPath != "-" {
		f, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	n, err := writeMoves(out, st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "write moves: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "exported %d moves\n", n)
}

func loadState(statePath, fen string, whiteToMove bool) (game.State, error) {
	if statePath == "" {
		b, err := board.ParseFENStrict(fen)
		if err != nil {
			return game.State{}, err
		}
		return game.State{Board: b, Selected: -1, IsPlaying: true, IsWhitesTurn: whiteToMove}, nil
	}

	snapshots, err := store.NewSnapshotStore(statePath, zerolog.Nop())
	if err != nil {
		return game.State{}, err
	}
	defer snapshots.Close()
	return snapshots.Load()
}

// writeMoves writes one CSV row per move available to the side to move,
// in generation order, and returns the number of rows.
func writeMoves(out io.Writer, st game.State) (int, error) {
	writer := csv.NewWriter(out)

	if err := writer.Write([]string{"uci", "san", "fen", "score", "best"}); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}

	side := board.Black
	if st.IsWhitesTurn {
		side = board.White
	}
	moves, best := game.ScoredMoves(st.Board, side)
	nextWhite := !st.IsWhitesTurn

	for i, m := range moves {
		san, err := notation.SAN(&st.Board, st.IsWhitesTurn, m.Move)
		if err != nil {
			san = ""
		}
		row := []string{
			m.Move.UCI(),
			san,
			notation.ConventionalFEN(&m.Board, nextWhite),
			strconv.FormatFloat(m.Score, 'f', 3, 64),
			strconv.FormatBool(i == best),
		}
		if err := writer.Write(row); err != nil {
			return i, fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return len(moves), fmt.Errorf("csv writer error: %w", err)
	}
	return len(moves), nil
}
