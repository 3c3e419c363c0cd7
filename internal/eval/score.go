// Package eval scores boards for the greedy opponent and, optionally, asks
// an external UCI engine for an advisory evaluation.
package eval

import "github.com/freeeve/greedychess/internal/board"

// PositionBias is a per-square penalty growing with rank: 0.001 on rank 0
// up to 0.008 on rank 7.
var PositionBias = func() [board.Size]float64 {
	var t [board.Size]float64
	for i := range t {
		t[i] = 0.001 * float64(board.Rank(i)+1)
	}
	return t
}()

// Score sums the signed magnitude of every cell and subtracts PositionBias
// for each cell owned by side. White wants a high score, Black a low one.
func Score(b *board.Board, side board.Color) float64 {
	var total float64
	for i, p := range b {
		if p.IsEmpty() {
			continue
		}
		total += float64(p.Signed())
		if p.Color == side {
			total -= PositionBias[i]
		}
	}
	return total
}
