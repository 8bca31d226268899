package game

import "github.com/minaorangina/blackjack/deck"

const (
	blackjack     = 21
	dealerStandOn = 17
	softAceBonus  = 10
)

// Points totals a hand. Aces count as 11 unless that would bust the hand,
// in which case they count as 1.
func Points(cards []deck.Card) int {
	total, softAces := 0, 0
	for _, c := range cards {
		total += c.Points()
		if c.Rank == deck.Ace {
			softAces++
		}
	}

	for total > blackjack && softAces > 0 {
		total -= softAceBonus
		softAces--
	}

	return total
}

// IsBlackjack is a two card 21
func IsBlackjack(cards []deck.Card) bool {
	return len(cards) == 2 && Points(cards) == blackjack
}

// IsBust reports a hand over 21
func IsBust(cards []deck.Card) bool {
	return Points(cards) > blackjack
}
