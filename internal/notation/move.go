// Package notation names squares and moves and bridges boards to standard
// chess notation through the pgn library.
package notation

import (
	"fmt"

	"github.com/freeeve/greedychess/internal/board"
)

// Square names put White's home row (board rank 7) on rank "1", so the
// starting position reads like a standard diagram: the white king on e1,
// the black king on e8.

// SquareName returns the name of a board index, e.g. 60 -> "e1".
func SquareName(sq int) string {
	if !board.OnBoard(sq) {
		return "-"
	}
	return string([]byte{byte('a' + board.File(sq)), byte('8' - board.Rank(sq))})
}

// ParseSquare converts a name like "e2" to a board index.
func ParseSquare(s string) (int, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0]) - 'a'
	rank := '8' - int(s[1])
	if file < 0 || file >= board.NumFiles || rank < 0 || rank >= board.NumRanks {
		return 0, fmt.Errorf("invalid square %q", s)
	}
	return board.Square(rank, file), nil
}

// Move encoding (uint32):
//   bits 0-5:  from square (0-63)
//   bits 6-11: to square (0-63)
//   bit 12:    pawn promoted to queen

// Move is a compact from/to pair.
type Move uint32

const (
	moveFromMask  = 0x3F
	moveToMask    = 0xFC0
	moveToShift   = 6
	movePromoFlag = 1 << 12
)

// EncodeMove packs a move. Off-board squares yield the zero Move.
func EncodeMove(from, to int, promoted bool) Move {
	if !board.OnBoard(from) || !board.OnBoard(to) {
		return 0
	}
	m := uint32(from) | uint32(to)<<moveToShift
	if promoted {
		m |= movePromoFlag
	}
	return Move(m)
}

// MoveOnBoard encodes from -> to, setting the promotion flag when the piece
// on from is a pawn reaching its last rank.
func MoveOnBoard(b *board.Board, from, to int) Move {
	p := b.At(from)
	promoted := p.Kind == board.Pawn && board.OnBoard(to) && board.IsPromotionRank(board.Rank(to))
	return EncodeMove(from, to, promoted)
}

// From returns the origin square.
func (m Move) From() int {
	return int(m & moveFromMask)
}

// To returns the destination square.
func (m Move) To() int {
	return int((m & moveToMask) >> moveToShift)
}

// Promoted reports whether the move promotes a pawn.
func (m Move) Promoted() bool {
	return m&movePromoFlag != 0
}

// UCI returns the move in UCI form, e.g. "e2e4" or "a7a8q".
func (m Move) UCI() string {
	s := SquareName(m.From()) + SquareName(m.To())
	if m.Promoted() {
		s += "q"
	}
	return s
}

func (m Move) String() string {
	return m.UCI()
}

// MoveFromUCI parses a UCI move. Only queen promotion is accepted since
// pawns always promote to a queen.
func MoveFromUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return 0, fmt.Errorf("invalid UCI move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return 0, fmt.Errorf("from square in %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return 0, fmt.Errorf("to square in %q: %w", s, err)
	}
	promoted := false
	if len(s) == 5 {
		if s[4] != 'q' && s[4] != 'Q' {
			return 0, fmt.Errorf("unsupported promotion %q in %q", s[4], s)
		}
		promoted = true
	}
	return EncodeMove(from, to, promoted), nil
}
