package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/minaorangina/blackjack/engine"
)

var (
	ErrUnknownGameID   = errors.New("unknown game ID")
	ErrUnknownPlayerID = errors.New("unknown player ID")
	ErrGameExists      = errors.New("game already exists")
)

type GameStore interface {
	FindGame(gameID string) *engine.Session
	FindPlayerGame(gameID, playerID string) (*engine.Session, error)
	AddGame(game *engine.Session) error
	RemoveGame(gameID string) error
	Games() []*engine.Session
}

// InMemoryGameStore maps game id to session
type InMemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]*engine.Session
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games: map[string]*engine.Session{},
	}
}

// FindGame returns nil if there is no such game
func (s *InMemoryGameStore) FindGame(gameID string) *engine.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.games[gameID]
}

// FindPlayerGame returns the game only if playerID is the one playing it
func (s *InMemoryGameStore) FindPlayerGame(gameID, playerID string) (*engine.Session, error) {
	game := s.FindGame(gameID)
	if game == nil {
		return nil, ErrUnknownGameID
	}
	if game.PlayerID() != playerID {
		return nil, ErrUnknownPlayerID
	}
	return game, nil
}

func (s *InMemoryGameStore) AddGame(game *engine.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[game.ID()]; exists {
		return ErrGameExists
	}

	s.games[game.ID()] = game
	return nil
}

func (s *InMemoryGameStore) RemoveGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[gameID]; !exists {
		return ErrUnknownGameID
	}

	delete(s.games, gameID)
	return nil
}

// Games returns every game, ordered by ID
func (s *InMemoryGameStore) Games() []*engine.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*engine.Session, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].ID() < games[j].ID()
	})

	return games
}
