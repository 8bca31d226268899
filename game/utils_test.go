package game

import "github.com/minaorangina/blackjack/deck"

func card(r deck.Rank) deck.Card {
	return deck.Card{Rank: r, Suit: deck.Hearts}
}

// drawOrder builds a deck whose first card is drawn first
func drawOrder(cards ...deck.Card) deck.Deck {
	d := make(deck.Deck, len(cards))
	for i, c := range cards {
		d[len(cards)-1-i] = c
	}
	return d
}
