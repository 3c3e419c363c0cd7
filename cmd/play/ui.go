package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/game"
	"github.com/freeeve/greedychess/internal/notation"
)

// Board layout on screen: each square is cellWidth columns by one row,
// offset by the rank labels on the left and a blank line on top.
const (
	cellWidth = 3
	boardX    = 3
	boardY    = 1
)

var (
	styleLight    = tcell.StyleDefault.Background(tcell.NewRGBColor(240, 217, 181)).Foreground(tcell.ColorBlack)
	styleDark     = tcell.StyleDefault.Background(tcell.NewRGBColor(181, 136, 99)).Foreground(tcell.ColorBlack)
	styleValid    = tcell.StyleDefault.Background(tcell.NewRGBColor(130, 190, 110)).Foreground(tcell.ColorBlack)
	styleSelected = tcell.StyleDefault.Background(tcell.NewRGBColor(230, 200, 70)).Foreground(tcell.ColorBlack)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleText     = tcell.StyleDefault
	styleGameOver = tcell.StyleDefault.Bold(true)
)

var glyphs = map[board.Color]map[board.Kind]rune{
	board.White: {
		board.Pawn: '♙', board.Knight: '♘', board.Bishop: '♗',
		board.Rook: '♖', board.Queen: '♕', board.King: '♔',
	},
	board.Black: {
		board.Pawn: '♟', board.Knight: '♞', board.Bishop: '♝',
		board.Rook: '♜', board.Queen: '♛', board.King: '♚',
	},
}

// ui drives a game controller from a tcell screen. A mouse press selects a
// square and the following release drops the piece.
type ui struct {
	screen  tcell.Screen
	ctrl    *game.Controller
	pressed bool
	log     zerolog.Logger
}

func newUI(screen tcell.Screen, ctrl *game.Controller, log zerolog.Logger) *ui {
	return &ui{screen: screen, ctrl: ctrl, log: log}
}

// squareAt maps screen coordinates to a board index.
func squareAt(x, y int) (int, bool) {
	if x < boardX || y < boardY {
		return -1, false
	}
	file := (x - boardX) / cellWidth
	rank := y - boardY
	if file >= board.NumFiles || rank >= board.NumRanks {
		return -1, false
	}
	return board.Square(rank, file), true
}

// run draws and handles events until the user quits.
func (u *ui) run() {
	u.draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return
		}
		if u.handle(ev) {
			return
		}
		u.draw()
	}
}

// handle applies one event and reports whether the user asked to quit.
func (u *ui) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			return true
		}
	case *tcell.EventMouse:
		u.mouse(ev)
	}
	return false
}

func (u *ui) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	sq, _ := squareAt(x, y)
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !u.pressed:
		u.pressed = true
		u.log.Debug().Int("square", sq).Msg("press")
		u.ctrl.SelectSquare(sq)
	case !down && u.pressed:
		u.pressed = false
		u.log.Debug().Int("square", sq).Msg("release")
		u.ctrl.ReleaseSquare(sq)
	}
}

func (u *ui) draw() {
	u.screen.Clear()
	st := u.ctrl.State()

	for rank := 0; rank < board.NumRanks; rank++ {
		y := boardY + rank
		label := notation.SquareName(board.Square(rank, 0))[1:]
		u.text(1, y, label, styleLabel)

		for file := 0; file < board.NumFiles; file++ {
			sq := board.Square(rank, file)
			style := styleLight
			if (rank+file)%2 == 1 {
				style = styleDark
			}
			switch {
			case sq == st.Selected:
				style = styleSelected
			case st.ValidMoves.Has(sq):
				style = styleValid
			}

			glyph := ' '
			if p := st.Board[sq]; !p.IsEmpty() {
				glyph = glyphs[p.Color][p.Kind]
			}
			x := boardX + file*cellWidth
			u.screen.SetContent(x, y, ' ', nil, style)
			u.screen.SetContent(x+1, y, glyph, nil, style)
			u.screen.SetContent(x+2, y, ' ', nil, style)
		}
	}

	filesY := boardY + board.NumRanks
	for file := 0; file < board.NumFiles; file++ {
		u.screen.SetContent(boardX+file*cellWidth+1, filesY, rune('a'+file), nil, styleLabel)
	}

	y := filesY + 2
	for _, msg := range st.Messages {
		u.text(1, y, msg, styleText)
		y++
	}
	if !st.IsPlaying {
		u.text(1, y, "Game over.", styleGameOver)
		y++
	}
	if st.LastMove != nil {
		move := st.LastMove.SAN
		if move == "" {
			move = st.LastMove.Move.UCI()
		}
		u.text(1, y, st.LastMove.Color.String()+" played "+move, styleLabel)
		y++
	}
	u.text(1, y+1, "Drag a piece with the mouse. q or Esc quits.", styleLabel)

	u.screen.Show()
}

func (u *ui) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
