package game

import (
	"testing"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/eval"
)

func TestScoredMoves(t *testing.T) {
	b := board.ParseFEN(board.StartFEN)
	for _, side := range []board.Color{board.White, board.Black} {
		moves, best := ScoredMoves(b, side)
		boards := OnePlyBoards(b, side)
		if len(moves) != len(boards) {
			t.Fatalf("%v: len(ScoredMoves) = %d, want %d", side, len(moves), len(boards))
		}
		for i, m := range moves {
			if m.Board != boards[i] {
				t.Errorf("%v: move %d board differs from OnePlyBoards", side, i)
			}
			if want := eval.Score(&boards[i], side); m.Score != want {
				t.Errorf("%v: move %d score = %v, want %v", side, i, m.Score, want)
			}
			if m.Board != board.Apply(b, m.Move.From(), m.Move.To()) {
				t.Errorf("%v: move %s does not produce its board", side, m.Move.UCI())
			}
		}
		if want := pickBest(candidates(b, side), side); best != want {
			t.Errorf("%v: best = %d, want %d", side, best, want)
		}
	}
}

func TestScoredMoves_None(t *testing.T) {
	moves, best := ScoredMoves(board.Board{}, board.White)
	if moves != nil || best != -1 {
		t.Errorf("ScoredMoves(empty) = %v, %d, want nil, -1", moves, best)
	}
}
