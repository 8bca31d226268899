package deck

import (
	"math/rand"
	"strings"
	"time"
)

// Deck represents a deck of cards. The top of the deck is the end of the slice.
type Deck []Card

// New creates a deck of cards
func New() Deck {
	cards := make(Deck, 0, len(suitNames)*len(rankNames))
	for suit := range suitNames {
		for rank := range rankNames {
			cards = append(cards, Card{Rank: Rank(rank), Suit: Suit(suit)})
		}
	}
	return cards
}

// NewShoe creates n decks stacked together
func NewShoe(n int) Deck {
	if n < 1 {
		n = 1
	}
	shoe := make(Deck, 0, n*len(suitNames)*len(rankNames))
	for i := 0; i < n; i++ {
		shoe = append(shoe, New()...)
	}
	return shoe
}

// Shuffle shuffles the deck of cards.
// The same rng state always produces the same order.
func (d *Deck) Shuffle(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	actualDeck := *d
	for i := len(actualDeck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		actualDeck[i], actualDeck[j] = actualDeck[j], actualDeck[i]
	}
}

// Deal deals n number of cards from the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	dealt := make([]Card, n)
	copy(dealt, (*d)[startingIndex:])
	*d = (*d)[:startingIndex]
	return dealt
}

// Pop removes the top card
func (d *Deck) Pop() (Card, error) {
	if len(*d) == 0 {
		return Card{}, ErrEmptyDeck
	}
	return d.Deal(1)[0], nil
}

// Remove takes one copy of c out of the deck, reporting whether it was there
func (d *Deck) Remove(c Card) bool {
	for i, card := range *d {
		if card == c {
			*d = append((*d)[:i], (*d)[i+1:]...)
			return true
		}
	}
	return false
}

// Join lists cards by name, comma separated
func Join(cards []Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
