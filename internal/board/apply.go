package board

// Apply returns a new board with the piece on from moved to to. A pawn
// landing on rank 0 or rank 7 becomes a queen of the same color. The input
// board is never modified. Off-board squares leave the copy unchanged.
func Apply(b Board, from, to int) Board {
	if !OnBoard(from) || !OnBoard(to) {
		return b
	}
	moved := b[from]
	b[to] = moved
	b[from] = Empty

	if moved.Kind == Pawn && IsPromotionRank(Rank(to)) {
		b[to] = Piece{Kind: Queen, Color: moved.Color}
	}
	return b
}

// IsPromotionRank reports whether a pawn reaching rank is promoted.
func IsPromotionRank(rank int) bool {
	return rank == 0 || rank == NumRanks-1
}
