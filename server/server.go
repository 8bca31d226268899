package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/minaorangina/blackjack/engine"
	"github.com/minaorangina/blackjack/game"
	"github.com/minaorangina/blackjack/history"
	"github.com/minaorangina/blackjack/logging"
	"github.com/minaorangina/blackjack/protocol"
	"github.com/minaorangina/blackjack/store"
)

const shutdownTimeout = 5 * time.Second

type Opts struct {
	Decks          int
	History        history.Log
	AllowedOrigins []string
	// AccessLog receives combined format request logs. Nil discards them.
	AccessLog io.Writer
	Logger    logging.Logger
}

type NewGameReq struct {
	Name string `json:"name"`
}

type NewGameRes struct {
	GameID   string              `json:"game_id"`
	PlayerID string              `json:"player_id"`
	Name     string              `json:"name"`
	State    protocol.TableState `json:"state"`
}

type CommandReq struct {
	GameID   string       `json:"game_id"`
	PlayerID string       `json:"player_id"`
	Command  protocol.Cmd `json:"command"`
}

type GameSummary struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
	Over   bool   `json:"over"`
}

type HistoryRes struct {
	Rounds []protocol.Round `json:"rounds"`
	Stats  history.Stats    `json:"stats"`
}

// GameServer is a game server
type GameServer struct {
	http.Server
	store   store.GameStore
	history history.Log
	decks   int
	logger  logging.Logger
}

// NewServer creates a new GameServer
func NewServer(gameStore store.GameStore, opts Opts) *GameServer {
	g := &GameServer{
		store:   gameStore,
		history: opts.History,
		decks:   opts.Decks,
		logger:  logging.OrNop(opts.Logger),
	}

	router := http.NewServeMux()
	router.HandleFunc("POST /new", g.HandleNewGame)
	router.HandleFunc("GET /games", g.HandleListGames)
	router.HandleFunc("GET /game/{id}", g.HandleFindGame)
	router.HandleFunc("DELETE /game/{id}", g.HandleRemoveGame)
	router.HandleFunc("POST /command", g.HandleCommand)
	router.HandleFunc("GET /history", g.HandleHistory)
	router.HandleFunc("GET /ws", g.HandleWS)

	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = io.Discard
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	var handler http.Handler = router
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handler)
	handler = handlers.CombinedLoggingHandler(accessLog, handler)
	handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{g.logger}),
		handlers.PrintRecoveryStack(false),
	)(handler)

	g.Handler = handler
	return g
}

// ServeHTTP serves http
func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// Run listens on addr until ctx is done, then shuts down gracefully
func (g *GameServer) Run(ctx context.Context, addr string) error {
	g.Addr = addr

	errs := make(chan error, 1)
	go func() {
		g.logger.Infow("listening", "addr", addr)
		errs <- g.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return g.Shutdown(shutdownCtx)
}

// HandleNewGame deals a new game for the named player
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		g.writeParseError(err, w)
		return
	}

	if data.Name == "" {
		writeText(w, http.StatusBadRequest, "missing player name")
		return
	}

	var recorder engine.Recorder
	if g.history != nil {
		recorder = g.history
	}

	session, err := engine.NewSession(r.Context(), engine.Opts{
		PlayerName: data.Name,
		Decks:      g.decks,
		Recorder:   recorder,
		Logger:     g.logger,
	})
	if err != nil {
		g.logger.Errorw("could not create game", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := g.store.AddGame(session); err != nil {
		g.logger.Errorw("could not store game", "game", session.ID(), "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	g.writeJSON(w, http.StatusCreated, NewGameRes{
		GameID:   session.ID(),
		PlayerID: session.PlayerID(),
		Name:     session.Name(),
		State:    session.State(),
	})
}

func (g *GameServer) HandleListGames(w http.ResponseWriter, r *http.Request) {
	games := g.store.Games()

	summaries := make([]GameSummary, 0, len(games))
	for _, s := range games {
		summaries = append(summaries, GameSummary{
			GameID: s.ID(),
			Name:   s.Name(),
			Over:   s.State().Over,
		})
	}

	g.writeJSON(w, http.StatusOK, summaries)
}

func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")

	session := g.store.FindGame(gameID)
	if session == nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	g.writeJSON(w, http.StatusOK, session.State())
}

func (g *GameServer) HandleRemoveGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")

	if err := g.store.RemoveGame(gameID); err != nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(gameID))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCommand applies one command to a game for the player it was issued to
func (g *GameServer) HandleCommand(w http.ResponseWriter, r *http.Request) {
	var data CommandReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		g.writeParseError(err, w)
		return
	}

	switch {
	case data.GameID == "":
		writeText(w, http.StatusBadRequest, "missing game ID")
		return
	case data.PlayerID == "":
		writeText(w, http.StatusBadRequest, "missing player ID")
		return
	case data.Command == protocol.Null:
		writeText(w, http.StatusBadRequest, "missing command")
		return
	}

	session, err := g.store.FindPlayerGame(data.GameID, data.PlayerID)
	if errors.Is(err, store.ErrUnknownPlayerID) {
		writeText(w, http.StatusForbidden, err.Error())
		return
	}
	if err != nil {
		writeText(w, http.StatusNotFound, unknownGameIDMsg(data.GameID))
		return
	}

	msg, err := session.Apply(r.Context(), data.Command)
	if err != nil {
		writeText(w, commandErrorStatus(err), err.Error())
		return
	}

	g.writeJSON(w, http.StatusOK, msg)
}

func (g *GameServer) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if g.history == nil {
		writeText(w, http.StatusServiceUnavailable, "history is disabled")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeText(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	rounds, err := g.history.RecentRounds(r.Context(), limit)
	if err != nil {
		g.logger.Errorw("could not read history", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	stats, err := g.history.Stats(r.Context())
	if err != nil {
		g.logger.Errorw("could not read stats", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	g.writeJSON(w, http.StatusOK, HistoryRes{Rounds: rounds, Stats: stats})
}

func commandErrorStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrRoundOver), errors.Is(err, game.ErrNotPlayerTurn), errors.Is(err, engine.ErrRoundInProgress):
		return http.StatusConflict
	case errors.Is(err, engine.ErrUnsupportedCommand), errors.Is(err, game.ErrUnknownCommand):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
