package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/freeeve/pgn/v3"

	"github.com/freeeve/greedychess/internal/board"
)

var (
	// ErrMissingKing is returned when a board lacks a king and so cannot
	// be expressed as a standard chess position.
	ErrMissingKing = errors.New("position is missing a king")
	// ErrNoSuchMove is returned when a move is not legal under full chess
	// rules, e.g. it leaves the mover's king attacked.
	ErrNoSuchMove = errors.New("move not legal in standard chess")
)

var fenLetters = [...]byte{
	board.Pawn:   'P',
	board.Knight: 'N',
	board.Bishop: 'B',
	board.Rook:   'R',
	board.Queen:  'Q',
	board.King:   'K',
}

// ConventionalFEN renders b as a complete standard FEN: White uppercase,
// White's home row last. Castling and en passant never apply.
func ConventionalFEN(b *board.Board, whiteToMove bool) string {
	var sb strings.Builder
	for rank := 0; rank < board.NumRanks; rank++ {
		empty := 0
		for file := 0; file < board.NumFiles; file++ {
			p := b[board.Square(rank, file)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			c := fenLetters[p.Kind]
			if p.Color == board.Black {
				c += 'a' - 'A'
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank < board.NumRanks-1 {
			sb.WriteByte('/')
		}
	}
	if whiteToMove {
		sb.WriteString(" w - - 0 1")
	} else {
		sb.WriteString(" b - - 0 1")
	}
	return sb.String()
}

// StandardSquare maps a board index to the a1=0 index used by standard
// chess libraries.
func StandardSquare(sq int) int {
	return sq ^ 56
}

// PositionKey returns the pgn packed position key for b.
func PositionKey(b *board.Board, whiteToMove bool) (string, error) {
	if !b.HasKing(board.White) || !b.HasKing(board.Black) {
		return "", ErrMissingKing
	}
	key, err := pgn.PackedPositionFromFEN(ConventionalFEN(b, whiteToMove))
	if err != nil {
		return "", fmt.Errorf("pack position: %w", err)
	}
	return key, nil
}

// SAN returns the standard algebraic notation of m played on b.
func SAN(b *board.Board, whiteToMove bool, m Move) (string, error) {
	key, err := PositionKey(b, whiteToMove)
	if err != nil {
		return "", err
	}
	packed, err := pgn.ParsePackedPosition(key)
	if err != nil {
		return "", fmt.Errorf("parse position key: %w", err)
	}
	pos := packed.Unpack()
	if pos == nil {
		return "", fmt.Errorf("unpack position %s", key)
	}

	from, to := StandardSquare(m.From()), StandardSquare(m.To())
	for _, mv := range pgn.GenerateLegalMoves(pos) {
		if int(mv.From) != from || int(mv.To) != to {
			continue
		}
		if m.Promoted() && mv.Promo != pgn.PromoQueen {
			continue
		}
		return sanFor(pos, mv), nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoSuchMove, m.UCI())
}
