package httpapi

import (
	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/eco"
	"github.com/freeeve/greedychess/internal/eval"
	"github.com/freeeve/greedychess/internal/game"
	"github.com/freeeve/greedychess/internal/notation"
)

// GameResponse is the JSON form of the session state.
type GameResponse struct {
	Board        []int             `json:"board"`       // 64 signed cell values, index = rank*8+file
	ValidMoves   []int             `json:"valid_moves"` // 64-entry 0/1 mask
	Selected     int               `json:"selected"`    // -1 when nothing is selected
	Messages     []string          `json:"messages"`
	IsPlaying    bool              `json:"is_playing"`
	IsWhitesTurn bool              `json:"is_whites_turn"`
	FEN          string            `json:"fen"`
	Position     string            `json:"position,omitempty"` // packed position key, absent without both kings
	LastMove     *LastMoveResponse `json:"last_move,omitempty"`
	Opening      *eco.Opening      `json:"opening,omitempty"`
}

type LastMoveResponse struct {
	UCI   string `json:"uci"`
	SAN   string `json:"san,omitempty"`
	Color string `json:"color"`
}

type AnalysisResponse struct {
	FEN    string `json:"fen"`
	CP     int    `json:"cp,omitempty"`
	Mate   int    `json:"mate,omitempty"`
	IsMate bool   `json:"is_mate"`
	Depth  int    `json:"depth"`
	TookMS int64  `json:"took_ms"`
}

// ToGameResponse converts a game state to its JSON form.
func ToGameResponse(st game.State) *GameResponse {
	cells := st.Board.Cells()
	resp := &GameResponse{
		Board:        cells[:],
		ValidMoves:   st.ValidMoves.Mask(),
		Selected:     st.Selected,
		Messages:     st.Messages,
		IsPlaying:    st.IsPlaying,
		IsWhitesTurn: st.IsWhitesTurn,
		FEN:          notation.ConventionalFEN(&st.Board, st.IsWhitesTurn),
	}
	if resp.Messages == nil {
		resp.Messages = []string{}
	}
	if key, err := notation.PositionKey(&st.Board, st.IsWhitesTurn); err == nil {
		resp.Position = key
	}
	if st.LastMove != nil {
		resp.LastMove = &LastMoveResponse{
			UCI:   st.LastMove.Move.UCI(),
			SAN:   st.LastMove.SAN,
			Color: sideName(st.LastMove.Color),
		}
	}
	return resp
}

// ToAnalysisResponse converts an engine analysis to its JSON form.
func ToAnalysisResponse(fen string, a eval.Analysis) *AnalysisResponse {
	return &AnalysisResponse{
		FEN:    fen,
		CP:     a.CP,
		Mate:   a.Mate,
		IsMate: a.IsMate,
		Depth:  a.Depth,
		TookMS: a.Took.Milliseconds(),
	}
}

type CandidateResponse struct {
	UCI   string  `json:"uci"`
	Board []int   `json:"board"`
	Score float64 `json:"score"`
}

// BoardsResponse lists the one-ply successors of the current board.
type BoardsResponse struct {
	Side   string              `json:"side"`
	Best   int                 `json:"best"` // index the greedy opponent would play, -1 if none
	Boards []CandidateResponse `json:"boards"`
}

// ToBoardsResponse scores every move available to side on b.
func ToBoardsResponse(b board.Board, side board.Color) *BoardsResponse {
	moves, best := game.ScoredMoves(b, side)
	resp := &BoardsResponse{
		Side:   sideName(side),
		Best:   best,
		Boards: make([]CandidateResponse, 0, len(moves)),
	}
	for _, m := range moves {
		cells := m.Board.Cells()
		resp.Boards = append(resp.Boards, CandidateResponse{
			UCI:   m.Move.UCI(),
			Board: cells[:],
			Score: m.Score,
		})
	}
	return resp
}
