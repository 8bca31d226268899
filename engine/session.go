package engine

import (
	"context"
	"sync"

	"github.com/minaorangina/blackjack/protocol"
)

const subscriberBuffer = 8

// Session is a game played remotely. Commands may arrive from several
// connections at once, so every access goes through the session lock.
type Session struct {
	mu          sync.Mutex
	engine      *Engine
	playerID    string
	subscribers map[chan protocol.OutboundMessage]struct{}
}

func NewSession(ctx context.Context, opts Opts) (*Session, error) {
	e, err := New(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &Session{
		engine:      e,
		playerID:    NewID(),
		subscribers: map[chan protocol.OutboundMessage]struct{}{},
	}, nil
}

func (s *Session) ID() string {
	return s.engine.ID()
}

func (s *Session) PlayerID() string {
	return s.playerID
}

func (s *Session) Name() string {
	return s.engine.Name()
}

func (s *Session) State() protocol.TableState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.State()
}

// Apply runs cmd and broadcasts the resulting message to subscribers.
// State and Null change nothing and are not broadcast.
func (s *Session) Apply(ctx context.Context, cmd protocol.Cmd) (protocol.OutboundMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Play(ctx, cmd); err != nil {
		return protocol.OutboundMessage{}, err
	}

	msg := s.message(cmd)
	if cmd != protocol.State && cmd != protocol.Null {
		s.broadcast(msg)
	}

	return msg, nil
}

// Subscribe returns a channel of every message the session produces.
// Slow subscribers miss messages rather than block play.
func (s *Session) Subscribe() (<-chan protocol.OutboundMessage, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan protocol.OutboundMessage, subscriberBuffer)
	s.subscribers[ch] = struct{}{}

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subscribers, ch)
			close(ch)
		})
	}

	return ch, unsubscribe
}

func (s *Session) message(cmd protocol.Cmd) protocol.OutboundMessage {
	state := s.engine.State()

	msg := protocol.OutboundMessage{
		GameID:        state.GameID,
		PlayerID:      s.playerID,
		Command:       cmd,
		State:         &state,
		ShouldRespond: !state.Over,
	}
	if state.Over {
		msg.Command = protocol.RoundOver
		msg.Message = state.Outcome.Text()
	}

	return msg
}

func (s *Session) broadcast(msg protocol.OutboundMessage) {
	for ch := range s.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}
