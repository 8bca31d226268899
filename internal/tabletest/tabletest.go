// Package tabletest deals rounds from a known order of cards.
package tabletest

import (
	"github.com/minaorangina/blackjack/deck"
	"github.com/minaorangina/blackjack/game"
)

// Stacked returns a game constructor that deals every round from cards,
// first card first: the dealer's up card, then the player's two.
func Stacked(cards ...deck.Card) func(game.Opts) (*game.Blackjack, error) {
	return func(opts game.Opts) (*game.Blackjack, error) {
		d := make(deck.Deck, len(cards))
		for i, c := range cards {
			d[len(cards)-1-i] = c
		}
		opts.Deck = d
		return game.New(opts)
	}
}

// TwoHitsToBust deals the dealer a ten and the player 5 and 6, followed by
// kings. One hit makes 21, a second busts, standing on 11 loses to 20.
func TwoHitsToBust() func(game.Opts) (*game.Blackjack, error) {
	return Stacked(
		deck.Card{Rank: deck.Ten, Suit: deck.Clubs},
		deck.Card{Rank: deck.Five, Suit: deck.Hearts},
		deck.Card{Rank: deck.Six, Suit: deck.Hearts},
		deck.Card{Rank: deck.King, Suit: deck.Spades},
		deck.Card{Rank: deck.King, Suit: deck.Diamonds},
		deck.Card{Rank: deck.King, Suit: deck.Hearts},
	)
}

// Natural deals the player ace-king against a dealer ten, who then draws a seven
func Natural() func(game.Opts) (*game.Blackjack, error) {
	return Stacked(
		deck.Card{Rank: deck.Ten, Suit: deck.Clubs},
		deck.Card{Rank: deck.Ace, Suit: deck.Spades},
		deck.Card{Rank: deck.King, Suit: deck.Spades},
		deck.Card{Rank: deck.Seven, Suit: deck.Diamonds},
	)
}
