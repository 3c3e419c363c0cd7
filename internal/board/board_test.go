package board

import "testing"

func TestMagnitudeOrder(t *testing.T) {
	if !(Magnitude(Pawn) < Magnitude(Knight) &&
		Magnitude(Knight) <= Magnitude(Bishop) &&
		Magnitude(Bishop) < Magnitude(Rook) &&
		Magnitude(Rook) < Magnitude(Queen) &&
		Magnitude(Queen) < Magnitude(King)) {
		t.Errorf("magnitudes out of order: %v", magnitudes)
	}

	seen := map[int]Kind{}
	for _, k := range Kinds {
		m := Magnitude(k)
		if m <= 0 {
			t.Errorf("Magnitude(%s) = %d, want > 0", k, m)
		}
		if other, ok := seen[m]; ok {
			t.Errorf("%s and %s share magnitude %d", k, other, m)
		}
		seen[m] = k
		if got := KindOf(m); got != k {
			t.Errorf("KindOf(%d) = %s, want %s", m, got, k)
		}
	}
}

func TestPieceSigned(t *testing.T) {
	tests := []struct {
		piece Piece
		want  int
	}{
		{Empty, 0},
		{NewPiece(White, Pawn), Magnitude(Pawn)},
		{NewPiece(Black, Pawn), -Magnitude(Pawn)},
		{NewPiece(White, King), Magnitude(King)},
		{NewPiece(Black, Queen), -Magnitude(Queen)},
	}
	for _, tt := range tests {
		if got := tt.piece.Signed(); got != tt.want {
			t.Errorf("%+v.Signed() = %d, want %d", tt.piece, got, tt.want)
		}
		if got := PieceFromSigned(tt.want); got != tt.piece {
			t.Errorf("PieceFromSigned(%d) = %+v, want %+v", tt.want, got, tt.piece)
		}
	}

	if got := PieceFromSigned(7); !got.IsEmpty() {
		t.Errorf("PieceFromSigned(7) = %+v, want empty", got)
	}
}

func TestCellsRoundTrip(t *testing.T) {
	b := ParseFEN(StartFEN)
	if got := FromCells(b.Cells()); got != b {
		t.Error("FromCells(Cells()) changed the board")
	}
}

func TestBoardAt(t *testing.T) {
	b := ParseFEN(StartFEN)
	if got := b.At(-1); !got.IsEmpty() {
		t.Errorf("At(-1) = %+v, want empty", got)
	}
	if got := b.At(Size); !got.IsEmpty() {
		t.Errorf("At(64) = %+v, want empty", got)
	}
	if got := b.At(Square(7, 4)); got != NewPiece(White, King) {
		t.Errorf("At(60) = %+v, want white king", got)
	}
}

func TestHasKing(t *testing.T) {
	b := ParseFEN("4k3/8/8/8/8/8/8/8")
	if !b.HasKing(White) {
		t.Error("HasKing(White) = false, want true")
	}
	if b.HasKing(Black) {
		t.Error("HasKing(Black) = true, want false")
	}
}
