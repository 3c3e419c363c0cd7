// Package board holds the 64-cell board, piece encoding, the partial FEN
// parser and the move applier.
package board

// Board cell layout:
//   index = rank*8 + file, rank and file in [0,7]
//   White's home row is rank 7, Black's is rank 0
//
// Cells hold a tagged Piece. The signed integer form
// (sign(color) * magnitude(kind), 0 = empty) only exists at the
// evaluation and serialization boundaries, see Cells and FromCells.

const (
	Size     = 64
	NumFiles = 8
	NumRanks = 8
)

// Color is the side a piece belongs to. The value is the sign used in the
// signed cell encoding.
type Color int8

const (
	White Color = 1
	Black Color = -1
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	return -c
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Kind identifies a piece type. NoKind marks an empty cell.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Kinds lists every real piece kind in material order.
var Kinds = [...]Kind{Pawn, Knight, Bishop, Rook, Queen, King}

var magnitudes = [...]int{
	NoKind: 0,
	Pawn:   10,
	Knight: 30,
	Bishop: 31,
	Rook:   50,
	Queen:  90,
	King:   1000,
}

// Magnitude returns the material weight of a kind. It doubles as the
// kind's tag in the signed cell encoding.
func Magnitude(k Kind) int {
	if int(k) >= len(magnitudes) {
		return 0
	}
	return magnitudes[k]
}

// KindOf maps a magnitude back to its kind, NoKind if none matches.
func KindOf(magnitude int) Kind {
	for _, k := range Kinds {
		if magnitudes[k] == magnitude {
			return k
		}
	}
	return NoKind
}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Piece is an occupant of a cell. The zero value is an empty cell.
type Piece struct {
	Kind  Kind
	Color Color
}

// Empty is the empty cell.
var Empty = Piece{}

// NewPiece builds a piece of the given color and kind.
func NewPiece(c Color, k Kind) Piece {
	return Piece{Kind: k, Color: c}
}

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoKind
}

// Belongs reports whether the piece is non-empty and owned by c.
func (p Piece) Belongs(c Color) bool {
	return p.Kind != NoKind && p.Color == c
}

// Signed returns the legacy signed-integer form of the piece.
func (p Piece) Signed() int {
	if p.Kind == NoKind {
		return 0
	}
	return int(p.Color) * Magnitude(p.Kind)
}

// PieceFromSigned decodes a signed cell value. Values that match no kind
// decode to an empty cell.
func PieceFromSigned(v int) Piece {
	if v == 0 {
		return Empty
	}
	c := White
	if v < 0 {
		c = Black
		v = -v
	}
	k := KindOf(v)
	if k == NoKind {
		return Empty
	}
	return Piece{Kind: k, Color: c}
}

// Board is a full 64-cell position. It is a value type: assigning or
// passing a Board copies it.
type Board [Size]Piece

// Rank returns the rank (row) of a square index.
func Rank(sq int) int { return sq / NumFiles }

// File returns the file (column) of a square index.
func File(sq int) int { return sq % NumFiles }

// Square returns the index for a rank and file.
func Square(rank, file int) int { return rank*NumFiles + file }

// OnBoard reports whether sq is a valid index.
func OnBoard(sq int) bool { return sq >= 0 && sq < Size }

// At returns the piece on sq, or Empty if sq is off the board.
func (b Board) At(sq int) Piece {
	if !OnBoard(sq) {
		return Empty
	}
	return b[sq]
}

// Cells returns the signed-integer form of every cell.
func (b Board) Cells() [Size]int {
	var out [Size]int
	for i, p := range b {
		out[i] = p.Signed()
	}
	return out
}

// FromCells builds a Board from signed cell values.
func FromCells(cells [Size]int) Board {
	var b Board
	for i, v := range cells {
		b[i] = PieceFromSigned(v)
	}
	return b
}

// HasKing reports whether a king of color c is on the board.
func (b Board) HasKing(c Color) bool {
	for _, p := range b {
		if p.Kind == King && p.Color == c {
			return true
		}
	}
	return false
}

// Occupied returns the number of non-empty cells.
func (b Board) Occupied() int {
	n := 0
	for _, p := range b {
		if !p.IsEmpty() {
			n++
		}
	}
	return n
}
