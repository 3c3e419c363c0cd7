// Package game runs a single session: the human plays White through
// SelectSquare/ReleaseSquare and Black answers immediately with a one-ply
// greedy move.
package game

import (
	"github.com/rs/zerolog"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/movegen"
	"github.com/freeeve/greedychess/internal/notation"
)

const WelcomeMessage = "Welcome to play chess! Move pieces by dragging them with a mouse."

// TurnMessage announces the side to move.
func TurnMessage(c board.Color) string {
	return "It's now " + c.String() + "'s turn."
}

// WinMessage announces the winner.
func WinMessage(c board.Color) string {
	return c.String() + " wins!"
}

// Config configures a new session.
type Config struct {
	StartFEN string // placement to start from, board.StartFEN if empty
	Logger   zerolog.Logger
}

// LastMove describes the most recently committed move.
type LastMove struct {
	Move  notation.Move
	Color board.Color
	SAN   string // empty when the move has no standard-chess equivalent
}

// State is a snapshot of everything a session exposes.
type State struct {
	Board        board.Board
	ValidMoves   movegen.SquareSet
	Selected     int // -1 when no piece is selected
	Messages     []string
	IsPlaying    bool
	IsWhitesTurn bool
	LastMove     *LastMove
}

// Controller owns the board and message log of one session. It is not safe
// for concurrent use.
type Controller struct {
	board      board.Board
	valid      movegen.SquareSet
	selected   int
	playing    bool
	whitesTurn bool
	messages   *MessageLog
	lastMove   *LastMove
	log        zerolog.Logger
}

// New starts a session from cfg.StartFEN with White to move.
func New(cfg Config) *Controller {
	fen := cfg.StartFEN
	if fen == "" {
		fen = board.StartFEN
	}
	c := &Controller{
		board:      board.ParseFEN(fen),
		selected:   -1,
		playing:    true,
		whitesTurn: true,
		messages:   NewMessageLog(WelcomeMessage, TurnMessage(board.White)),
		log:        cfg.Logger,
	}
	c.log.Info().Str("fen", c.board.FEN()).Msg("session started")
	return c
}

// Restore resumes a session from a saved state. Any selection in st is
// dropped.
func Restore(st State, log zerolog.Logger) *Controller {
	var last *LastMove
	if st.LastMove != nil {
		lm := *st.LastMove
		last = &lm
	}
	c := &Controller{
		board:      st.Board,
		selected:   -1,
		playing:    st.IsPlaying,
		whitesTurn: st.IsWhitesTurn,
		messages:   NewMessageLog(st.Messages...),
		lastMove:   last,
		log:        log,
	}
	c.log.Info().
		Str("fen", c.board.FEN()).
		Bool("playing", c.playing).
		Bool("whites_turn", c.whitesTurn).
		Msg("session restored")
	return c
}

// State returns a copy of the session state.
func (c *Controller) State() State {
	st := State{
		Board:        c.board,
		ValidMoves:   c.valid,
		Selected:     c.selected,
		Messages:     c.messages.Messages(),
		IsPlaying:    c.playing,
		IsWhitesTurn: c.whitesTurn,
	}
	if c.lastMove != nil {
		lm := *c.lastMove
		st.LastMove = &lm
	}
	return st
}

// Board returns the current board.
func (c *Controller) Board() board.Board { return c.board }

// ValidMoves returns the destinations highlighted for the current selection.
func (c *Controller) ValidMoves() movegen.SquareSet { return c.valid }

// Messages returns the message log, oldest first.
func (c *Controller) Messages() []string { return c.messages.Messages() }

// IsPlaying reports whether the game is still running.
func (c *Controller) IsPlaying() bool { return c.playing }

// IsWhitesTurn reports whether White is to move.
func (c *Controller) IsWhitesTurn() bool { return c.whitesTurn }

// SideToMove returns the color to move.
func (c *Controller) SideToMove() board.Color {
	if c.whitesTurn {
		return board.White
	}
	return board.Black
}

// SelectSquare picks up the piece on id if it belongs to the side to move
// and highlights its destinations. Anything else is ignored.
func (c *Controller) SelectSquare(id int) {
	if !c.playing || !board.OnBoard(id) {
		return
	}
	if !c.board[id].Belongs(c.SideToMove()) {
		return
	}
	c.clearSelection()
	c.selected = id
	c.valid = movegen.Destinations(c.board, id)
}

// ReleaseSquare drops the selected piece on id. A highlighted id commits
// the move; capturing a king ends the game, otherwise the turn passes and
// Black replies at once. The selection is always cleared.
func (c *Controller) ReleaseSquare(id int) {
	from, valid := c.selected, c.valid
	c.clearSelection()
	if !c.playing || from < 0 || !valid.Has(id) {
		return
	}

	mover := c.board[from].Color
	captured := c.board[id]
	c.commit(notation.MoveOnBoard(&c.board, from, id), board.Apply(c.board, from, id), mover)

	if captured.Kind == board.King {
		c.endGame(mover == board.White)
		return
	}
	c.switchTurn()
	if !c.whitesTurn {
		c.SimulateTurn()
	}
}

// OnePlyBoards returns every board reachable in one move by side.
func (c *Controller) OnePlyBoards(side board.Color) []board.Board {
	return OnePlyBoards(c.board, side)
}

// SimulateTurn plays the greedy move for the side to move. If a king is
// gone afterwards the game ends, otherwise the turn passes.
func (c *Controller) SimulateTurn() {
	c.clearSelection()
	if !c.playing {
		return
	}

	side := c.SideToMove()
	cands := candidates(c.board, side)
	if len(cands) == 0 {
		c.log.Info().Str("side", side.String()).Msg("no moves available")
		c.endGame(side.Opponent() == board.White)
		return
	}

	best := cands[pickBest(cands, side)]
	c.commit(best.move, best.board, side)

	whiteKing := c.board.HasKing(board.White)
	if !whiteKing || !c.board.HasKing(board.Black) {
		c.endGame(whiteKing)
		return
	}
	c.switchTurn()
}

func (c *Controller) commit(m notation.Move, next board.Board, mover board.Color) {
	san, err := notation.SAN(&c.board, mover == board.White, m)
	if err != nil {
		c.log.Debug().Err(err).Str("move", m.UCI()).Msg("no SAN for move")
	}
	c.board = next
	c.lastMove = &LastMove{Move: m, Color: mover, SAN: san}

	c.log.Debug().
		Str("side", mover.String()).
		Str("move", m.UCI()).
		Str("san", san).
		Msg("move committed")
}

func (c *Controller) switchTurn() {
	if !c.playing {
		return
	}
	c.whitesTurn = !c.whitesTurn
	c.messages.Add(TurnMessage(c.SideToMove()))
}

func (c *Controller) endGame(whiteWins bool) {
	winner := board.Black
	if whiteWins {
		winner = board.White
	}
	c.messages.Add(WinMessage(winner))
	c.playing = false
	c.log.Info().Str("winner", winner.String()).Msg("game over")
}

func (c *Controller) clearSelection() {
	c.selected = -1
	c.valid = 0
}
