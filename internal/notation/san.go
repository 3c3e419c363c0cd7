package notation

import "github.com/freeeve/pgn/v3"

const (
	sanFiles = "abcdefgh"
	sanRanks = "12345678"

	flagEnPassant = 2
	flagCastle    = 4
)

// sanFor renders a legal move of pos in standard algebraic notation,
// including the check or mate suffix.
func sanFor(pos *pgn.GameState, mv pgn.Mv) string {
	san := sanBody(pos, mv)

	after := pos.Pack().Unpack()
	if after != nil {
		_ = pgn.ApplyMove(after, mv)
		if after.IsInCheck() {
			if len(pgn.GenerateLegalMoves(after)) == 0 {
				san += "#"
			} else {
				san += "+"
			}
		}
	}
	return san
}

func sanBody(pos *pgn.GameState, mv pgn.Mv) string {
	if mv.Flags == flagCastle {
		if mv.To > mv.From {
			return "O-O"
		}
		return "O-O-O"
	}

	fromSq, toSq := int(mv.From), int(mv.To)
	target := string(sanFiles[toSq%8]) + string(sanRanks[toSq/8])

	piece := upper(rune(pos.PieceAt(mv.From)))
	isCapture := pos.PieceAt(mv.To) != 0 || (piece == 'P' && mv.Flags == flagEnPassant)

	if piece == 'P' {
		san := target
		if isCapture {
			san = string(sanFiles[fromSq%8]) + "x" + target
		}
		switch mv.Promo {
		case pgn.PromoQueen:
			san += "=Q"
		case pgn.PromoRook:
			san += "=R"
		case pgn.PromoBishop:
			san += "=B"
		case pgn.PromoKnight:
			san += "=N"
		}
		return san
	}

	san := string(piece) + disambiguation(pos, mv, piece)
	if isCapture {
		san += "x"
	}
	return san + target
}

// disambiguation returns the origin file, rank or both when another piece
// of the same kind can reach the same square.
func disambiguation(pos *pgn.GameState, mv pgn.Mv, piece rune) string {
	fromSq := int(mv.From)
	ambiguous, sameFile, sameRank := false, false, false
	for _, other := range pgn.GenerateLegalMoves(pos) {
		if other.To != mv.To || other.From == mv.From || upper(rune(pos.PieceAt(other.From))) != piece {
			continue
		}
		ambiguous = true
		if int(other.From)%8 == fromSq%8 {
			sameFile = true
		}
		if int(other.From)/8 == fromSq/8 {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(sanFiles[fromSq%8])
	case !sameRank:
		return string(sanRanks[fromSq/8])
	default:
		return string(sanFiles[fromSq%8]) + string(sanRanks[fromSq/8])
	}
}

func upper(c rune) rune {
	if c >= 'a' && c <= 'z' {
		return c - 32
	}
	return c
}
