package movegen

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/freeeve/greedychess/internal/board"
)

func sq(rank, file int) int { return board.Square(rank, file) }

func place(pieces map[int]board.Piece) board.Board {
	var b board.Board
	for i, p := range pieces {
		b[i] = p
	}
	return b
}

var (
	wP = board.NewPiece(board.White, board.Pawn)
	wN = board.NewPiece(board.White, board.Knight)
	wB = board.NewPiece(board.White, board.Bishop)
	wR = board.NewPiece(board.White, board.Rook)
	wQ = board.NewPiece(board.White, board.Queen)
	wK = board.NewPiece(board.White, board.King)
	bP = board.NewPiece(board.Black, board.Pawn)
	bN = board.NewPiece(board.Black, board.Knight)
	bR = board.NewPiece(board.Black, board.Rook)
	bK = board.NewPiece(board.Black, board.King)
)

func TestClassify(t *testing.T) {
	b := place(map[int]board.Piece{sq(3, 3): wP, sq(4, 4): bP})
	tests := []struct {
		name  string
		pos   int
		mover board.Color
		want  Verdict
	}{
		{"below board", -1, board.White, Blocked},
		{"above board", 64, board.White, Blocked},
		{"own piece", sq(3, 3), board.White, Blocked},
		{"opponent", sq(4, 4), board.White, Capture},
		{"opponent black view", sq(3, 3), board.Black, Capture},
		{"empty", sq(0, 0), board.Black, Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(&b, tt.pos, tt.mover); got != tt.want {
				t.Errorf("Classify(%d) = %s, want %s", tt.pos, got, tt.want)
			}
		})
	}
}

func TestDestinations(t *testing.T) {
	tests := []struct {
		name   string
		board  board.Board
		origin int
		want   []int
	}{
		{
			name:   "empty origin",
			board:  place(nil),
			origin: sq(4, 4),
			want:   []int{},
		},
		{
			name:   "white pawn start",
			board:  place(map[int]board.Piece{sq(6, 4): wP}),
			origin: sq(6, 4),
			want:   []int{sq(4, 4), sq(5, 4)},
		},
		{
			name:   "black pawn start",
			board:  place(map[int]board.Piece{sq(1, 2): bP}),
			origin: sq(1, 2),
			want:   []int{sq(2, 2), sq(3, 2)},
		},
		{
			name:   "pawn double push blocked on far square",
			board:  place(map[int]board.Piece{sq(6, 4): wP, sq(4, 4): bN}),
			origin: sq(6, 4),
			want:   []int{sq(5, 4)},
		},
		{
			name:   "pawn blocked in front",
			board:  place(map[int]board.Piece{sq(6, 4): wP, sq(5, 4): bN}),
			origin: sq(6, 4),
			want:   []int{},
		},
		{
			name:   "pawn off start rank single push",
			board:  place(map[int]board.Piece{sq(5, 4): wP}),
			origin: sq(5, 4),
			want:   []int{sq(4, 4)},
		},
		{
			name:   "white pawn captures both sides",
			board:  place(map[int]board.Piece{sq(4, 4): wP, sq(3, 3): bN, sq(3, 5): bP, sq(3, 4): bR}),
			origin: sq(4, 4),
			want:   []int{sq(3, 3), sq(3, 5)},
		},
		{
			name:   "black pawn captures white pawn",
			board:  place(map[int]board.Piece{sq(3, 3): bP, sq(4, 4): wP}),
			origin: sq(3, 3),
			want:   []int{sq(4, 3), sq(4, 4)},
		},
		{
			name:   "pawn ignores own piece diagonally",
			board:  place(map[int]board.Piece{sq(4, 4): wP, sq(3, 3): wN}),
			origin: sq(4, 4),
			want:   []int{sq(3, 4)},
		},
		{
			name:   "pawn on file 0 does not wrap",
			board:  place(map[int]board.Piece{sq(4, 0): wP, sq(2, 7): bN, sq(3, 7): bN}),
			origin: sq(4, 0),
			want:   []int{sq(3, 0)},
		},
		{
			name:   "pawn on file 7 does not wrap",
			board:  place(map[int]board.Piece{sq(3, 7): bP, sq(4, 0): wN, sq(5, 0): wN}),
			origin: sq(3, 7),
			want:   []int{sq(4, 7)},
		},
		{
			name:   "knight in corner",
			board:  place(map[int]board.Piece{sq(7, 0): wN}),
			origin: sq(7, 0),
			want:   []int{sq(5, 1), sq(6, 2)},
		},
		{
			name:   "knight on file 7 does not wrap",
			board:  place(map[int]board.Piece{sq(4, 7): bN}),
			origin: sq(4, 7),
			want:   []int{sq(2, 6), sq(3, 5), sq(5, 5), sq(6, 6)},
		},
		{
			name:   "knight captures and is blocked",
			board:  place(map[int]board.Piece{sq(4, 4): wN, sq(2, 3): bP, sq(2, 5): wP}),
			origin: sq(4, 4),
			want:   []int{sq(2, 3), sq(3, 2), sq(3, 6), sq(5, 2), sq(5, 6), sq(6, 3), sq(6, 5)},
		},
		{
			name:   "king in the middle",
			board:  place(map[int]board.Piece{sq(4, 4): wK, sq(3, 4): wP, sq(5, 5): bP}),
			origin: sq(4, 4),
			want:   []int{sq(3, 3), sq(3, 5), sq(4, 3), sq(4, 5), sq(5, 3), sq(5, 4), sq(5, 5)},
		},
		{
			name:   "king on file 0 wraps to file 7",
			board:  place(map[int]board.Piece{sq(4, 0): bK}),
			origin: sq(4, 0),
			want:   []int{sq(2, 7), sq(3, 0), sq(3, 1), sq(3, 7), sq(4, 1), sq(4, 7), sq(5, 0), sq(5, 1)},
		},
		{
			name:   "king in corner wraps along its rank",
			board:  place(map[int]board.Piece{sq(0, 0): bK}),
			origin: sq(0, 0),
			want:   []int{sq(0, 1), sq(0, 7), sq(1, 0), sq(1, 1)},
		},
		{
			name:   "rook on open board",
			board:  place(map[int]board.Piece{sq(0, 0): wR}),
			origin: sq(0, 0),
			want: []int{
				sq(0, 1), sq(0, 2), sq(0, 3), sq(0, 4), sq(0, 5), sq(0, 6), sq(0, 7),
				sq(1, 0), sq(2, 0), sq(3, 0), sq(4, 0), sq(5, 0), sq(6, 0), sq(7, 0),
			},
		},
		{
			name:   "rook on file 7 does not wrap right",
			board:  place(map[int]board.Piece{sq(3, 7): wR, sq(2, 7): wP, sq(4, 7): wP, sq(3, 5): wP}),
			origin: sq(3, 7),
			want:   []int{sq(3, 6)},
		},
		{
			name:   "rook stops at capture",
			board:  place(map[int]board.Piece{sq(3, 3): wR, sq(3, 5): bP, sq(1, 3): wP, sq(3, 0): bP, sq(6, 3): bP}),
			origin: sq(3, 3),
			want:   []int{sq(2, 3), sq(3, 0), sq(3, 1), sq(3, 2), sq(3, 4), sq(3, 5), sq(4, 3), sq(5, 3), sq(6, 3)},
		},
		{
			name:   "bishop from corner",
			board:  place(map[int]board.Piece{sq(7, 7): wB, sq(3, 3): bP}),
			origin: sq(7, 7),
			want:   []int{sq(3, 3), sq(4, 4), sq(5, 5), sq(6, 6)},
		},
		{
			name:   "queen boxed in by own pieces",
			board:  place(map[int]board.Piece{sq(7, 3): wQ, sq(7, 2): wB, sq(7, 4): wK, sq(6, 2): wP, sq(6, 3): wP, sq(6, 4): wP}),
			origin: sq(7, 3),
			want:   []int{},
		},
		{
			name:   "queen is rook plus bishop",
			board:  place(map[int]board.Piece{sq(6, 1): wQ, sq(6, 3): bP, sq(4, 1): wP, sq(5, 2): wP}),
			origin: sq(6, 1),
			want: []int{
				sq(5, 0), sq(5, 1),
				sq(6, 0), sq(6, 2), sq(6, 3),
				sq(7, 0), sq(7, 1), sq(7, 2),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.board
			got := Destinations(tt.board, tt.origin).Squares()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Destinations(%d) = %v, want %v", tt.origin, got, tt.want)
			}
			if tt.board != before {
				t.Error("Destinations modified the board")
			}
		})
	}
}

func TestDestinations_StartPosition(t *testing.T) {
	b := board.ParseFEN(board.StartFEN)
	total := 0
	for i, p := range b {
		if p.Belongs(board.White) {
			total += Destinations(b, i).Len()
		}
	}
	if total != 20 {
		t.Errorf("white destinations from start = %d, want 20", total)
	}
}

func randomBoard(rng *rand.Rand) board.Board {
	var b board.Board
	for i := range b {
		if rng.Intn(3) != 0 {
			continue
		}
		c := board.White
		if rng.Intn(2) == 0 {
			c = board.Black
		}
		b[i] = board.NewPiece(c, board.Kinds[rng.Intn(len(board.Kinds))])
	}
	return b
}

// Walks every ray independently and checks the slide ends at the first
// occupied square, including it only when it holds an opponent.
func TestSlidingStopRule(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rays := map[board.Kind][]ray{
		board.Bishop: diagonals[:],
		board.Rook:   orthogonals[:],
		board.Queen:  append(diagonals[:], orthogonals[:]...),
	}

	for n := 0; n < 300; n++ {
		b := randomBoard(rng)
		for origin, p := range b {
			dirs, ok := rays[p.Kind]
			if !ok {
				continue
			}
			var want SquareSet
			for _, r := range dirs {
				rank, file := board.Rank(origin), board.File(origin)
				for {
					rank += r.dRank
					file += r.dFile
					if rank < 0 || rank > 7 || file < 0 || file > 7 {
						break
					}
					to := board.Square(rank, file)
					occ := b[to]
					if occ.IsEmpty() {
						want = want.Add(to)
						continue
					}
					if occ.Color != p.Color {
						want = want.Add(to)
					}
					break
				}
			}
			if got := Destinations(b, origin); got != want {
				t.Fatalf("board %d origin %d %s: Destinations = %v, want %v",
					n, origin, p.Kind, got.Squares(), want.Squares())
			}
		}
	}
}

func TestDestinations_NeverOffBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		b := randomBoard(rng)
		for origin, p := range b {
			if p.IsEmpty() {
				continue
			}
			for _, to := range Destinations(b, origin).Squares() {
				if to < 0 || to >= 64 {
					t.Fatalf("origin %d produced off-board square %d", origin, to)
				}
				if b[to].Belongs(p.Color) {
					t.Fatalf("origin %d lands on own piece at %d", origin, to)
				}
			}
		}
	}
}
