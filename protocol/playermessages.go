package protocol

import (
	"time"

	"github.com/minaorangina/blackjack/deck"
)

type Player struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// TableState is a snapshot of one round
type TableState struct {
	GameID       string      `json:"gameID"`
	PlayerName   string      `json:"playerName,omitempty"`
	Player       []deck.Card `json:"player"`
	Dealer       []deck.Card `json:"dealer"`
	PlayerPoints int         `json:"playerPoints"`
	DealerPoints int         `json:"dealerPoints"`
	Over         bool        `json:"over"`
	Clear        bool        `json:"clear"`
	Outcome      Outcome     `json:"outcome"`
	Seed         int64       `json:"seed"`
	DeckCount    int         `json:"deckCount"`
}

// InboundMessage is a message from a front end to a game
type InboundMessage struct {
	GameID   string `json:"gameID"`
	PlayerID string `json:"playerID"`
	Command  Cmd    `json:"command"`
}

// OutboundMessage is a message from a game to a front end
type OutboundMessage struct {
	GameID        string      `json:"gameID"`
	PlayerID      string      `json:"playerID"`
	Command       Cmd         `json:"command"`
	Message       string      `json:"message,omitempty"`
	State         *TableState `json:"state,omitempty"`
	ShouldRespond bool        `json:"shouldRespond"`
	Error         string      `json:"error,omitempty"`
}

// Round is a finished round as kept in the history
type Round struct {
	GameID       string      `json:"gameID"`
	PlayerName   string      `json:"playerName"`
	Player       []deck.Card `json:"player"`
	Dealer       []deck.Card `json:"dealer"`
	PlayerPoints int         `json:"playerPoints"`
	DealerPoints int         `json:"dealerPoints"`
	Outcome      Outcome     `json:"outcome"`
	Seed         int64       `json:"seed"`
	FinishedAt   time.Time   `json:"finishedAt"`
}
