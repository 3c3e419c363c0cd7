package game

import (
	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/eval"
	"github.com/freeeve/greedychess/internal/movegen"
	"github.com/freeeve/greedychess/internal/notation"
)

type candidate struct {
	move  notation.Move
	board board.Board
}

// candidates enumerates origins in ascending order and, for each, its
// destinations in ascending order. No pruning, deduplication or check
// filtering is done.
func candidates(b board.Board, side board.Color) []candidate {
	var out []candidate
	for from, p := range b {
		if !p.Belongs(side) {
			continue
		}
		for _, to := range movegen.Destinations(b, from).Squares() {
			out = append(out, candidate{
				move:  notation.MoveOnBoard(&b, from, to),
				board: board.Apply(b, from, to),
			})
		}
	}
	return out
}

// OnePlyBoards returns every board reachable from b in one move by side,
// in generation order.
func OnePlyBoards(b board.Board, side board.Color) []board.Board {
	cands := candidates(b, side)
	out := make([]board.Board, len(cands))
	for i, c := range cands {
		out[i] = c.board
	}
	return out
}

// pickBest returns the index of the highest scoring candidate for White or
// the lowest for Black. Ties keep the earliest candidate.
func pickBest(cands []candidate, side board.Color) int {
	best := 0
	bestScore := eval.Score(&cands[0].board, side)
	for i := 1; i < len(cands); i++ {
		s := eval.Score(&cands[i].board, side)
		if side == board.White && s > bestScore || side == board.Black && s < bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

// ScoredMove is a candidate move with the board it produces and that
// board's score for the mover.
type ScoredMove struct {
	Move  notation.Move
	Board board.Board
	Score float64
}

// ScoredMoves scores every candidate for side in generation order and
// returns the index the greedy opponent would play, or -1 if there is none.
func ScoredMoves(b board.Board, side board.Color) ([]ScoredMove, int) {
	cands := candidates(b, side)
	if len(cands) == 0 {
		return nil, -1
	}
	out := make([]ScoredMove, len(cands))
	for i := range cands {
		out[i] = ScoredMove{
			Move:  cands[i].move,
			Board: cands[i].board,
			Score: eval.Score(&cands[i].board, side),
		}
	}
	return out, pickBest(cands, side)
}
