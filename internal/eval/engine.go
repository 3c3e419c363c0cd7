package eval

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/freeeve/uci"
	"github.com/rs/zerolog"
)

// ErrNoResults is returned when the engine finishes a search without
// reporting a score.
var ErrNoResults = errors.New("no results from engine")

// ErrClosed is returned by Analyze after Close.
var ErrClosed = errors.New("analyzer closed")

// AnalyzerConfig configures the external engine used for advisory analysis.
type AnalyzerConfig struct {
	StockfishPath string
	Logger        zerolog.Logger
	Depth         int // search depth per request
	HashMB        int
	Threads       int
	CacheSize     int // analyses remembered by FEN
}

// Analysis is an engine evaluation from White's point of view.
type Analysis struct {
	CP     int // centipawns, valid when !IsMate
	Mate   int // mate in N, + White mates, - Black mates
	IsMate bool
	Depth  int
	Took   time.Duration
}

// Analyzer wraps a single UCI engine process. It never chooses moves for
// the game; it only reports how an external engine sees the board.
type Analyzer struct {
	mu     sync.Mutex
	engine *uci.Engine
	cache  *AnalysisCache
	cfg    AnalyzerConfig
	log    zerolog.Logger
}

// NewAnalyzer starts the engine. It returns nil, nil when no engine path is
// configured.
func NewAnalyzer(cfg AnalyzerConfig) (*Analyzer, error) {
	if cfg.StockfishPath == "" {
		return nil, nil
	}
	if cfg.Depth == 0 {
		cfg.Depth = 16
	}
	if cfg.HashMB == 0 {
		cfg.HashMB = 64
	}
	if cfg.Threads == 0 {
		cfg.Threads = 1
	}

	engine, err := uci.NewEngine(cfg.StockfishPath)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	opts := uci.Options{
		Hash:    cfg.HashMB,
		Threads: cfg.Threads,
		MultiPV: 1,
		Ponder:  false,
		OwnBook: false,
	}
	if err := engine.SetOptions(opts); err != nil {
		engine.Close()
		return nil, fmt.Errorf("set options: %w", err)
	}

	cfg.Logger.Info().
		Str("stockfish", cfg.StockfishPath).
		Int("depth", cfg.Depth).
		Int("threads", cfg.Threads).
		Int("hash_mb", cfg.HashMB).
		Msg("analysis engine started")

	return &Analyzer{
		engine: engine,
		cache:  NewAnalysisCache(cfg.CacheSize),
		cfg:    cfg,
		log:    cfg.Logger,
	}, nil
}

// Analyze searches fen to the configured depth. Requests are serialized on
// the single engine process; a fen seen recently is answered from cache.
func (a *Analyzer) Analyze(ctx context.Context, fen string, whiteToMove bool) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	if a.cache != nil {
		if cached, ok := a.cache.Get(fen); ok {
			return cached, nil
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.engine == nil {
		return Analysis{}, ErrClosed
	}

	start := time.Now()
	if err := a.engine.SetFEN(fen); err != nil {
		return Analysis{}, fmt.Errorf("set FEN: %w", err)
	}
	results, err := a.engine.GoDepth(a.cfg.Depth, uci.HighestDepthOnly)
	if err != nil {
		return Analysis{}, fmt.Errorf("engine search: %w", err)
	}
	if len(results.Results) == 0 {
		return Analysis{}, ErrNoResults
	}

	best := results.Results[0]
	for _, r := range results.Results {
		if r.Depth > best.Depth {
			best = r
		}
	}

	out := Analysis{
		Depth: int(best.Depth),
		Took:  time.Since(start),
	}
	score := whitePerspective(int(best.Score), whiteToMove)
	if best.Mate {
		out.IsMate = true
		out.Mate = score
	} else {
		out.CP = score
	}

	a.log.Debug().
		Str("fen", fen).
		Int("cp", out.CP).
		Int("mate", out.Mate).
		Dur("took", out.Took).
		Msg("analyzed")
	if a.cache != nil {
		a.cache.Put(fen, out)
	}
	return out, nil
}

// Close stops the engine process.
func (a *Analyzer) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.engine != nil {
		a.engine.Close()
		a.engine = nil
	}
	return nil
}

// Engines report scores for the side to move.
func whitePerspective(score int, whiteToMove bool) int {
	if whiteToMove {
		return score
	}
	return -score
}
