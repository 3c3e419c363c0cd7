// Package movegen computes destination squares for a piece from its
// movement pattern alone. It never checks whether a move leaves the
// mover's king attacked.
package movegen

import "github.com/freeeve/greedychess/internal/board"

// Verdict classifies a target square for a moving side.
type Verdict uint8

const (
	// Blocked: off the board or held by the mover's own piece. A slide
	// stops and the square is not a destination.
	Blocked Verdict = iota
	// Capture: held by the opponent. A slide stops on the square.
	Capture
	// Empty: free. A slide continues past it.
	Empty
)

func (v Verdict) String() string {
	switch v {
	case Capture:
		return "capture"
	case Empty:
		return "empty"
	default:
		return "blocked"
	}
}

// Classify returns the verdict for moving a mover piece onto pos.
func Classify(b *board.Board, pos int, mover board.Color) Verdict {
	if !board.OnBoard(pos) {
		return Blocked
	}
	p := b[pos]
	switch {
	case p.IsEmpty():
		return Empty
	case p.Color == mover:
		return Blocked
	default:
		return Capture
	}
}

// Destinations returns every square the piece on origin may move to. An
// empty or off-board origin yields an empty set. The board is not modified.
func Destinations(b board.Board, origin int) SquareSet {
	if !board.OnBoard(origin) {
		return 0
	}
	p := b[origin]
	switch p.Kind {
	case board.Pawn:
		return pawnDestinations(&b, origin, p.Color)
	case board.Knight:
		return knightDestinations(&b, origin, p.Color)
	case board.Bishop:
		return slide(&b, origin, p.Color, diagonals)
	case board.Rook:
		return slide(&b, origin, p.Color, orthogonals)
	case board.Queen:
		return slide(&b, origin, p.Color, diagonals) | slide(&b, origin, p.Color, orthogonals)
	case board.King:
		return kingDestinations(&b, origin, p.Color)
	case board.NoKind:
		return 0
	}
	return 0
}

// pawnDirection is the rank step of a pawn push. White starts on rank 6 and
// moves toward rank 0.
func pawnDirection(c board.Color) int {
	if c == board.White {
		return -1
	}
	return 1
}

func pawnStartRank(c board.Color) int {
	if c == board.White {
		return 6
	}
	return 1
}

func pawnDestinations(b *board.Board, origin int, c board.Color) SquareSet {
	var set SquareSet
	dir := pawnDirection(c)
	rank, file := board.Rank(origin), board.File(origin)

	// origin+dir*7 shifts the file by -dir, origin+dir*9 by +dir.
	for _, step := range [...]int{7, 9} {
		df := dir
		if step == 7 {
			df = -dir
		}
		if f := file + df; f < 0 || f >= board.NumFiles {
			continue
		}
		if to := origin + dir*step; Classify(b, to, c) == Capture {
			set = set.Add(to)
		}
	}

	one := origin + dir*8
	if Classify(b, one, c) == Empty {
		set = set.Add(one)
		two := origin + dir*16
		if rank == pawnStartRank(c) && Classify(b, two, c) == Empty {
			set = set.Add(two)
		}
	}
	return set
}

var knightOffsets = [...]int{17, -17, 15, -15, 10, -10, 6, -6}

func knightDestinations(b *board.Board, origin int, c board.Color) SquareSet {
	var set SquareSet
	rank, file := board.Rank(origin), board.File(origin)
	for _, off := range knightOffsets {
		to := origin + off
		if !board.OnBoard(to) {
			continue
		}
		dr, df := abs(board.Rank(to)-rank), abs(board.File(to)-file)
		if !(dr == 1 && df == 2 || dr == 2 && df == 1) {
			continue
		}
		if Classify(b, to, c) != Blocked {
			set = set.Add(to)
		}
	}
	return set
}

// kingDestinations steps origin + 8*dr + df without checking that the file
// stays adjacent, so a king on file 0 or 7 can wrap to the far file of the
// neighboring rank.
func kingDestinations(b *board.Board, origin int, c board.Color) SquareSet {
	var set SquareSet
	for dr := -1; dr <= 1; dr++ {
		for df := -1; df <= 1; df++ {
			if dr == 0 && df == 0 {
				continue
			}
			to := origin + 8*dr + df
			if Classify(b, to, c) != Blocked {
				set = set.Add(to)
			}
		}
	}
	return set
}

type ray struct {
	dRank, dFile int
}

var (
	// +9, -7, +7, -9
	diagonals = [...]ray{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	// +8, -8, +1, -1
	orthogonals = [...]ray{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// slide walks each ray until it leaves the board or Classify stops it.
func slide(b *board.Board, origin int, c board.Color, rays [4]ray) SquareSet {
	var set SquareSet
	for _, r := range rays {
		rank, file := board.Rank(origin), board.File(origin)
		for {
			rank += r.dRank
			file += r.dFile
			if rank < 0 || rank >= board.NumRanks || file < 0 || file >= board.NumFiles {
				break
			}
			to := board.Square(rank, file)
			v := Classify(b, to, c)
			if v == Blocked {
				break
			}
			set = set.Add(to)
			if v == Capture {
				break
			}
		}
	}
	return set
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
