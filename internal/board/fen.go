package board

import (
	"errors"
	"fmt"
	"strings"
)

// StartFEN is the standard starting placement.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// ErrMalformedFEN is returned by ParseFENStrict for placement strings that
// ParseFEN would silently corrupt.
var ErrMalformedFEN = errors.New("malformed FEN")

var kindFromLetter = map[byte]Kind{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

var letterFromKind = [...]byte{
	Pawn:   'p',
	Knight: 'n',
	Bishop: 'b',
	Rook:   'r',
	Queen:  'q',
	King:   'k',
}

// Letter case is inverted relative to standard FEN: uppercase letters are
// Black, lowercase are White. The first row of the string is rank 7.
func colorFromLetter(c byte) Color {
	if c >= 'A' && c <= 'Z' {
		return Black
	}
	return White
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// ParseFEN builds a board from the piece-placement field of fen. Everything
// after the first space is ignored. No validation is done: unknown letters
// leave their cell empty and counters that run off the board are dropped.
func ParseFEN(fen string) Board {
	var b Board
	rank, file := NumRanks-1, 0
	for i := 0; i < len(fen); i++ {
		c := fen[i]
		if c == ' ' {
			break
		}
		switch {
		case c == '/':
			file = 0
			rank--
		case c >= '0' && c <= '9':
			file += int(c - '0')
		default:
			if sq := Square(rank, file); rank >= 0 && rank < NumRanks && file < NumFiles && OnBoard(sq) {
				if k, ok := kindFromLetter[toLower(c)]; ok {
					b[sq] = Piece{Kind: k, Color: colorFromLetter(c)}
				}
			}
			file++
		}
	}
	return b
}

// ParseFENStrict parses like ParseFEN but rejects placements that do not
// describe exactly 8 ranks of 8 files.
func ParseFENStrict(fen string) (Board, error) {
	placement := fen
	if i := strings.IndexByte(fen, ' '); i >= 0 {
		placement = fen[:i]
	}
	if placement == "" {
		return Board{}, fmt.Errorf("%w: empty placement", ErrMalformedFEN)
	}

	rows := strings.Split(placement, "/")
	if len(rows) != NumRanks {
		return Board{}, fmt.Errorf("%w: %d ranks, want %d", ErrMalformedFEN, len(rows), NumRanks)
	}
	for r, row := range rows {
		files := 0
		for i := 0; i < len(row); i++ {
			c := row[i]
			switch {
			case c >= '1' && c <= '8':
				files += int(c - '0')
			default:
				if _, ok := kindFromLetter[toLower(c)]; !ok {
					return Board{}, fmt.Errorf("%w: unexpected %q in rank %d", ErrMalformedFEN, c, r+1)
				}
				files++
			}
		}
		if files != NumFiles {
			return Board{}, fmt.Errorf("%w: rank %d has %d files", ErrMalformedFEN, r+1, files)
		}
	}
	return ParseFEN(placement), nil
}

// FEN renders the placement field in the same convention ParseFEN reads,
// so ParseFEN(b.FEN()) == b.
func (b Board) FEN() string {
	var sb strings.Builder
	for rank := NumRanks - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < NumFiles; file++ {
			p := b[Square(rank, file)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			c := letterFromKind[p.Kind]
			if p.Color == Black {
				c -= 'a' - 'A'
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
