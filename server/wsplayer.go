package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/blackjack/engine"
	"github.com/minaorangina/blackjack/logging"
	"github.com/minaorangina/blackjack/protocol"
	"github.com/minaorangina/blackjack/store"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSPlayer plays a session over a websocket. Every message the session
// produces is forwarded, so several sockets may watch the same game.
type WSPlayer struct {
	id      string
	session *engine.Session
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	logger  logging.Logger
}

func NewWSPlayer(id string, session *engine.Session, conn *websocket.Conn, logger logging.Logger) *WSPlayer {
	return &WSPlayer{
		id:      id,
		session: session,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
		logger:  logging.OrNop(logger),
	}
}

// Start runs the pumps until either side closes the connection
func (p *WSPlayer) Start(ctx context.Context) {
	updates, unsubscribe := p.session.Subscribe()

	go p.writePump()
	go p.forward(updates)
	go p.readPump(ctx, unsubscribe)

	p.Send(protocol.OutboundMessage{
		GameID:        p.session.ID(),
		PlayerID:      p.id,
		Command:       protocol.State,
		State:         stateOf(p.session),
		ShouldRespond: true,
	})
}

func (p *WSPlayer) ID() string {
	return p.id
}

// Send queues msg for the write pump. It is dropped if the player has gone.
func (p *WSPlayer) Send(msg protocol.OutboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		p.logger.Errorw("could not marshal message", "player", p.id, "error", err)
		return
	}

	select {
	case p.send <- data:
	case <-p.done:
	}
}

func (p *WSPlayer) forward(updates <-chan protocol.OutboundMessage) {
	for msg := range updates {
		p.Send(msg)
	}
}

func (p *WSPlayer) readPump(ctx context.Context, unsubscribe func()) {
	defer func() {
		unsubscribe()
		close(p.done)
	}()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				p.logger.Warnw("websocket closed", "player", p.id, "error", err)
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.sendError(err)
			continue
		}
		if msg.GameID != "" && msg.GameID != p.session.ID() {
			p.sendError(store.ErrUnknownGameID)
			continue
		}

		out, err := p.session.Apply(ctx, msg.Command)
		if err != nil {
			p.sendError(err)
			continue
		}

		// everything else reaches this player through its subscription
		if msg.Command == protocol.State {
			p.Send(out)
		}
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-p.done:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			p.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (p *WSPlayer) sendError(err error) {
	p.Send(protocol.OutboundMessage{
		GameID:   p.session.ID(),
		PlayerID: p.id,
		Command:  protocol.Error,
		Error:    err.Error(),
	})
}

func stateOf(s *engine.Session) *protocol.TableState {
	state := s.State()
	return &state
}

// HandleWS connects a player to their game
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	gameID := query.Get("game_id")
	if gameID == "" {
		writeText(w, http.StatusBadRequest, "missing game ID")
		return
	}
	playerID := query.Get("player_id")
	if playerID == "" {
		writeText(w, http.StatusBadRequest, "missing player ID")
		return
	}

	session, err := g.store.FindPlayerGame(gameID, playerID)
	if err != nil {
		writeText(w, http.StatusNotFound, err.Error())
		return
	}

	rawConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		g.logger.Warnw("could not upgrade to websocket", "game", gameID, "error", err)
		return
	}

	player := NewWSPlayer(playerID, session, rawConn, g.logger)
	player.Start(context.WithoutCancel(r.Context()))
}
