package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/game"
)

func newTestUI(t *testing.T) (*ui, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 20)

	ctrl := game.New(game.Config{Logger: zerolog.Nop()})
	return newUI(screen, ctrl, zerolog.Nop()), screen
}

// center returns the screen cell in the middle of sq.
func center(sq int) (int, int) {
	return boardX + board.File(sq)*cellWidth + 1, boardY + board.Rank(sq)
}

func TestSquareAt(t *testing.T) {
	tests := []struct {
		x, y   int
		want   int
		wantOK bool
	}{
		{boardX, boardY, 0, true},
		{boardX + 2, boardY, 0, true},
		{boardX + 3, boardY, 1, true},
		{boardX + 7*cellWidth + 2, boardY + 7, 63, true},
		{boardX - 1, boardY, -1, false},
		{boardX, boardY - 1, -1, false},
		{boardX + 8*cellWidth, boardY, -1, false},
		{boardX, boardY + 8, -1, false},
	}

	for _, tt := range tests {
		got, ok := squareAt(tt.x, tt.y)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("squareAt(%d, %d) = %d, %v, want %d, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDragMovesPiece(t *testing.T) {
	u, _ := newTestUI(t)
	e2, e4 := board.Square(6, 4), board.Square(4, 4)

	x, y := center(e2)
	u.handle(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if st := u.ctrl.State(); st.Selected != e2 || !st.ValidMoves.Has(e4) {
		t.Fatalf("after press: selected %d, e4 valid %v", st.Selected, st.ValidMoves.Has(e4))
	}

	// Motion with the button held must not release.
	x, y = center(board.Square(5, 4))
	u.handle(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if u.ctrl.State().Selected != e2 {
		t.Fatal("drag motion dropped the piece")
	}

	x, y = center(e4)
	u.handle(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	st := u.ctrl.State()
	if st.Board[e4] != board.NewPiece(board.White, board.Pawn) {
		t.Errorf("e4 = %+v, want White pawn", st.Board[e4])
	}
	if !st.IsWhitesTurn || st.LastMove == nil || st.LastMove.Color != board.Black {
		t.Errorf("Black did not reply: %+v", st.LastMove)
	}
}

func TestReleaseOffBoardCancels(t *testing.T) {
	u, _ := newTestUI(t)
	e2 := board.Square(6, 4)
	before := u.ctrl.Board()

	x, y := center(e2)
	u.handle(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	u.handle(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))

	st := u.ctrl.State()
	if st.Board != before || st.Selected != -1 {
		t.Errorf("off-board release changed the game: selected %d", st.Selected)
	}
}

func TestQuitKeys(t *testing.T) {
	u, _ := newTestUI(t)
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"Q", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), true},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), true},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
	}
	for _, tt := range tests {
		if got := u.handle(tt.ev); got != tt.want {
			t.Errorf("handle(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDraw(t *testing.T) {
	u, screen := newTestUI(t)
	u.ctrl.SelectSquare(board.Square(6, 4))
	u.draw()

	cells, width, _ := screen.GetContents()
	at := func(x, y int) tcell.SimCell { return cells[y*width+x] }

	x, y := center(board.Square(7, 4))
	if r := at(x, y).Runes; len(r) == 0 || r[0] != '♔' {
		t.Errorf("e1 shows %q, want White king", r)
	}
	x, y = center(board.Square(0, 3))
	if r := at(x, y).Runes; len(r) == 0 || r[0] != '♛' {
		t.Errorf("d8 shows %q, want Black queen", r)
	}

	x, y = center(board.Square(4, 4))
	if _, bg, _ := at(x, y).Style.Decompose(); bg != tcell.NewRGBColor(130, 190, 110) {
		t.Errorf("e4 background = %v, want highlight", bg)
	}
	x, y = center(board.Square(6, 4))
	if _, bg, _ := at(x, y).Style.Decompose(); bg != tcell.NewRGBColor(230, 200, 70) {
		t.Errorf("e2 background = %v, want selection", bg)
	}

	// Rank labels follow the square names: White's home row reads 1.
	if r := at(1, boardY+7).Runes; len(r) == 0 || r[0] != '1' {
		t.Errorf("bottom rank label = %q, want 1", r)
	}
}
