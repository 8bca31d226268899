package deck

import (
	"errors"
	"fmt"
)

var (
	ErrCardOutOfRange = errors.New("card arguments out of range")
	ErrEmptyDeck      = errors.New("deck is empty")
)

const cardsPerSuit = 13

// Rank represents a rank in a deck of cards
type Rank int

var rankNames = []string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

func (r Rank) String() string {
	if r < Ace || r > King {
		return ""
	}
	return rankNames[r]
}

// Suit represents a suit in a deck of cards
type Suit int

var suitNames = []string{"Clubs", "Diamonds", "Hearts", "Spades"}

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return ""
	}
	return suitNames[s]
}

// Card represents a playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard constructs a card
func NewCard(rank, suit int) (Card, error) {
	if rank < int(Ace) || rank > int(King) || suit < int(Clubs) || suit > int(Spades) {
		return Card{}, ErrCardOutOfRange
	}
	return Card{Rank: Rank(rank), Suit: Suit(suit)}, nil
}

// CardFromID is the inverse of Card.ID
func CardFromID(id int) (Card, error) {
	if id < 1 || id > cardsPerSuit*len(suitNames) {
		return Card{}, fmt.Errorf("card id %d: %w", id, ErrCardOutOfRange)
	}
	return NewCard((id-1)%cardsPerSuit, (id-1)/cardsPerSuit)
}

// ID returns the card's sprite identifier in [1,52]
func (c Card) ID() int {
	return int(c.Suit)*cardsPerSuit + int(c.Rank) + 1
}

// Number is ID() % 13: Ace is 1, Queen is 12 and King wraps to 0.
func (c Card) Number() int {
	return c.ID() % cardsPerSuit
}

// Mark is the suit index derived from the ID.
func (c Card) Mark() int {
	return (c.ID() - 1) / cardsPerSuit
}

// Points returns the blackjack value of a card, counting an ace as 11
func (c Card) Points() int {
	switch {
	case c.Rank == Ace:
		return 11
	case c.Rank >= Ten:
		return 10
	default:
		return int(c.Rank) + 1
	}
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}
