package httpapi

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/eco"
	"github.com/freeeve/greedychess/internal/eval"
	"github.com/freeeve/greedychess/internal/game"
	"github.com/freeeve/greedychess/internal/notation"
	"github.com/freeeve/greedychess/internal/store"
)

var (
	// ErrIllegalMove is returned by Move when the origin cannot reach the
	// destination.
	ErrIllegalMove = errors.New("illegal move")
	// ErrGameOver is returned by Move once the game has ended.
	ErrGameOver = errors.New("game over")
	// ErrAnalysisDisabled is returned by Analyze when no engine is configured.
	ErrAnalysisDisabled = errors.New("analysis disabled")
)

// SessionConfig configures the single game served over HTTP.
type SessionConfig struct {
	StartFEN string
	Store    *store.SnapshotStore // optional
	Analyzer *eval.Analyzer       // optional
	Openings *eco.Database        // optional
	Logger   zerolog.Logger
}

// Session serializes access to one game controller and persists it after
// every change.
type Session struct {
	mu       sync.Mutex
	ctrl     *game.Controller
	startFEN string
	store    *store.SnapshotStore
	analyzer *eval.Analyzer
	openings *eco.Database
	log      zerolog.Logger
}

// NewSession restores the saved game if the store holds one, otherwise it
// starts a new game from cfg.StartFEN. A corrupt snapshot is logged and
// replaced.
func NewSession(cfg SessionConfig) (*Session, error) {
	s := &Session{
		startFEN: cfg.StartFEN,
		store:    cfg.Store,
		analyzer: cfg.Analyzer,
		openings: cfg.Openings,
		log:      cfg.Logger.With().Str("component", "session").Logger(),
	}

	if s.store != nil {
		st, err := s.store.Load()
		switch {
		case err == nil:
			s.ctrl = game.Restore(st, s.log)
			return s, nil
		case errors.Is(err, store.ErrNotFound):
		case errors.Is(err, store.ErrCorrupt):
			s.log.Warn().Err(err).Str("path", s.store.Path()).Msg("discarding corrupt snapshot")
		default:
			return nil, fmt.Errorf("load session: %w", err)
		}
	}

	s.ctrl = s.newController()
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) newController() *game.Controller {
	return game.New(game.Config{StartFEN: s.startFEN, Logger: s.log})
}

// State returns a snapshot of the game.
func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.State()
}

// Select picks up the piece on sq.
func (s *Session) Select(sq int) (game.State, error) {
	return s.mutate(func(c *game.Controller) error {
		c.SelectSquare(sq)
		return nil
	})
}

// Release drops the selected piece on sq.
func (s *Session) Release(sq int) (game.State, error) {
	return s.mutate(func(c *game.Controller) error {
		c.ReleaseSquare(sq)
		return nil
	})
}

// Move plays m for the side to move as a select followed by a release.
// Any earlier selection is discarded.
func (s *Session) Move(m notation.Move) (game.State, error) {
	return s.mutate(func(c *game.Controller) error {
		if !c.IsPlaying() {
			return ErrGameOver
		}
		c.ReleaseSquare(-1)
		c.SelectSquare(m.From())
		if !c.ValidMoves().Has(m.To()) {
			c.ReleaseSquare(-1)
			return fmt.Errorf("%w: %s", ErrIllegalMove, m.UCI())
		}
		c.ReleaseSquare(m.To())
		return nil
	})
}

// Reset discards the current game and starts a new one.
func (s *Session) Reset() (game.State, error) {
	return s.mutate(func(*game.Controller) error {
		s.ctrl = s.newController()
		return nil
	})
}

// Opening names the opening st has reached, or returns nil.
func (s *Session) Opening(st game.State) *eco.Opening {
	return s.openings.Lookup(&st.Board, st.IsWhitesTurn)
}

// Analyze asks the external engine about the current board and returns
// the FEN it was given along with the result.
func (s *Session) Analyze(ctx context.Context) (string, eval.Analysis, error) {
	if s.analyzer == nil {
		return "", eval.Analysis{}, ErrAnalysisDisabled
	}
	s.mu.Lock()
	b := s.ctrl.Board()
	whitesTurn := s.ctrl.IsWhitesTurn()
	s.mu.Unlock()

	fen := notation.ConventionalFEN(&b, whitesTurn)
	a, err := s.analyzer.Analyze(ctx, fen, whitesTurn)
	return fen, a, err
}

// mutate runs fn under the lock and saves the result. A failed save is
// reported but the in-memory game keeps the change.
func (s *Session) mutate(fn func(c *game.Controller) error) (game.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.ctrl); err != nil {
		return s.ctrl.State(), err
	}
	if err := s.save(); err != nil {
		return s.ctrl.State(), err
	}
	return s.ctrl.State(), nil
}

func (s *Session) save() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(s.ctrl.State()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// sideName is the JSON name of a color.
func sideName(c board.Color) string {
	if c == board.White {
		return "white"
	}
	return "black"
}
