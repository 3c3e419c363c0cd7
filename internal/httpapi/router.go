package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/game"
	"github.com/freeeve/greedychess/internal/notation"
)

const (
	maxBodyBytes    = 1 << 10
	analysisTimeout = 30 * time.Second
)

// Handler serves the game session.
type Handler struct {
	session *Session
	log     zerolog.Logger
}

// NewRouter creates the HTTP router for a session.
func NewRouter(log zerolog.Logger, session *Session) http.Handler {
	h := &Handler{
		session: session,
		log:     log,
	}

	if session.analyzer != nil {
		log.Info().Msg("engine analysis enabled")
	} else {
		log.Info().Msg("engine analysis disabled - pass -stockfish to enable")
	}

	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(h.health))
	mux.Handle("/readyz", http.HandlerFunc(h.health))
	mux.Handle("/v1/game", http.HandlerFunc(h.game))
	mux.Handle("/v1/select", http.HandlerFunc(h.selectSquare))
	mux.Handle("/v1/release", http.HandlerFunc(h.releaseSquare))
	mux.Handle("/v1/move", http.HandlerFunc(h.move))
	mux.Handle("/v1/reset", http.HandlerFunc(h.reset))
	mux.Handle("/v1/boards", http.HandlerFunc(h.boards))
	mux.Handle("/v1/analysis", http.HandlerFunc(h.analysis))

	handler := CORS(RequestID(AccessLog(log, mux)))
	return handler
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) game(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	h.writeGame(w, h.session.State())
}

type squareRequest struct {
	Square *int `json:"square"`
}

func (h *Handler) selectSquare(w http.ResponseWriter, r *http.Request) {
	sq, ok := h.decodeSquare(w, r)
	if !ok {
		return
	}
	st, err := h.session.Select(sq)
	if err != nil {
		h.logSaveError(r, err)
	}
	h.writeGame(w, st)
}

func (h *Handler) releaseSquare(w http.ResponseWriter, r *http.Request) {
	sq, ok := h.decodeSquare(w, r)
	if !ok {
		return
	}
	st, err := h.session.Release(sq)
	if err != nil {
		h.logSaveError(r, err)
	}
	h.writeGame(w, st)
}

type moveRequest struct {
	UCI string `json:"uci"`
}

func (h *Handler) move(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req moveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	m, err := notation.MoveFromUCI(strings.TrimSpace(req.UCI))
	if err != nil {
		http.Error(w, "invalid move: "+err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.session.Move(m)
	switch {
	case errors.Is(err, ErrIllegalMove):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	case errors.Is(err, ErrGameOver):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		h.logSaveError(r, err)
	}
	h.writeGame(w, st)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	st, err := h.session.Reset()
	if err != nil {
		h.logSaveError(r, err)
	}
	h.writeGame(w, st)
}

// boards lists every board reachable in one move by the side to move, in
// generation order, with its greedy score.
func (h *Handler) boards(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	st := h.session.State()
	side := board.Black
	if st.IsWhitesTurn {
		side = board.White
	}
	writeJSON(w, ToBoardsResponse(st.Board, side))
}

func (h *Handler) analysis(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), analysisTimeout)
	defer cancel()

	fen, a, err := h.session.Analyze(ctx)
	if err != nil {
		if errors.Is(err, ErrAnalysisDisabled) {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		h.log.Error().Err(err).Str("rid", GetRequestID(r.Context())).Msg("analysis failed")
		http.Error(w, "analysis failed: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, ToAnalysisResponse(fen, a))
}

// decodeSquare reads a {"square": n} body. Out-of-range squares are passed
// through; the controller ignores them.
func (h *Handler) decodeSquare(w http.ResponseWriter, r *http.Request) (int, bool) {
	if !allowMethod(w, r, http.MethodPost) {
		return 0, false
	}
	var req squareRequest
	if !decodeBody(w, r, &req) {
		return 0, false
	}
	if req.Square == nil {
		http.Error(w, "missing square", http.StatusBadRequest)
		return 0, false
	}
	return *req.Square, true
}

func (h *Handler) writeGame(w http.ResponseWriter, st game.State) {
	resp := ToGameResponse(st)
	resp.Opening = h.session.Opening(st)
	writeJSON(w, resp)
}

func (h *Handler) logSaveError(r *http.Request, err error) {
	h.log.Error().Err(err).Str("rid", GetRequestID(r.Context())).Msg("session not persisted")
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
	// Don't call http.Error after setting headers - it causes "superfluous WriteHeader"
}
