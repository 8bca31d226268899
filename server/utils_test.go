package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/blackjack/engine"
	"github.com/minaorangina/blackjack/history"
	utils "github.com/minaorangina/blackjack/internal"
	"github.com/minaorangina/blackjack/internal/tabletest"
	"github.com/minaorangina/blackjack/protocol"
	"github.com/minaorangina/blackjack/store"
	"github.com/stretchr/testify/require"
)

// panickyStore blows up on every lookup
type panickyStore struct {
	store.InMemoryGameStore
}

func (s *panickyStore) FindGame(gameID string) *engine.Session {
	panic("lookup exploded")
}

func newStackedSession(t *testing.T, gameStore store.GameStore, recorder engine.Recorder) *engine.Session {
	t.Helper()

	s, err := engine.NewSession(context.Background(), engine.Opts{
		PlayerName: "Ada",
		Recorder:   recorder,
		NewGame:    tabletest.TwoHitsToBust(),
	})
	require.NoError(t, err)
	require.NoError(t, gameStore.AddGame(s))
	return s
}

func openHistory(t *testing.T) *history.Store {
	t.Helper()

	h, err := history.Open(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func mustMakeJson(t *testing.T, input interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(input)
	utils.AssertNoError(t, err)

	return data
}

func newCreateGameRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/new", bytes.NewBuffer(data))
	return request
}

func newGetGameRequest(gameID string) *http.Request {
	request, _ := http.NewRequest(http.MethodGet, "/game/"+gameID, nil)
	return request
}

func newCommandRequest(data []byte) *http.Request {
	request, _ := http.NewRequest(http.MethodPost, "/command", bytes.NewBuffer(data))
	return request
}

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, request)
	return response
}

func command(t *testing.T, handler http.Handler, gameID, playerID string, cmd protocol.Cmd) *httptest.ResponseRecorder {
	t.Helper()
	return serve(handler, newCommandRequest(mustMakeJson(t, CommandReq{GameID: gameID, PlayerID: playerID, Command: cmd})))
}

func play(t *testing.T, handler http.Handler, session *engine.Session, cmd protocol.Cmd) *httptest.ResponseRecorder {
	t.Helper()
	return command(t, handler, session.ID(), session.PlayerID(), cmd)
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func decodeBody[T any](t *testing.T, body io.Reader) T {
	t.Helper()

	var got T
	if err := json.NewDecoder(body).Decode(&got); err != nil {
		t.Fatalf("could not unmarshal json: %s", err.Error())
	}
	return got
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %v", url, status, err)
	}
	t.Cleanup(func() { ws.Close() })

	return ws
}

func makeWSUrl(serverURL, gameID, playerID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") +
		"/ws?game_id=" + gameID + "&player_id=" + playerID
}

func readMessage(t *testing.T, ws *websocket.Conn) protocol.OutboundMessage {
	t.Helper()

	var msg protocol.OutboundMessage
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, ws.ReadJSON(&msg))
	return msg
}

func sendCommand(t *testing.T, ws *websocket.Conn, gameID string, cmd protocol.Cmd) {
	t.Helper()
	require.NoError(t, ws.WriteJSON(protocol.InboundMessage{GameID: gameID, Command: cmd}))
}
