package deck

import (
	"math/rand"
	"testing"

	utils "github.com/minaorangina/blackjack/internal"
	"github.com/stretchr/testify/assert"
)

var fullDeckCount = 52

func TestDeck(t *testing.T) {
	t.Run("new deck has every card once", func(t *testing.T) {
		d := New()
		utils.AssertEqual(t, len(d), fullDeckCount)

		unique := map[Card]struct{}{}
		for _, c := range d {
			unique[c] = struct{}{}
		}
		utils.AssertEqual(t, len(unique), fullDeckCount)
	})

	t.Run("shoe stacks decks", func(t *testing.T) {
		assert.Len(t, NewShoe(4), 4*fullDeckCount)
		assert.Len(t, NewShoe(0), fullDeckCount)
	})
}

func TestDeckShuffle(t *testing.T) {
	t.Run("same seed, same order", func(t *testing.T) {
		d1, d2 := New(), New()
		d1.Shuffle(rand.New(rand.NewSource(42)))
		d2.Shuffle(rand.New(rand.NewSource(42)))
		assert.Equal(t, d1, d2)
	})

	t.Run("keeps every card", func(t *testing.T) {
		d := New()
		d.Shuffle(nil)
		assert.ElementsMatch(t, New(), d)
	})
}

func TestDeckDeal(t *testing.T) {
	t.Run("deals from the top", func(t *testing.T) {
		d := New()
		top := d[len(d)-3:]
		want := append([]Card{}, top...)

		got := d.Deal(3)
		assert.Equal(t, want, got)
		assert.Len(t, d, fullDeckCount-3)
	})

	t.Run("out of range deals nothing", func(t *testing.T) {
		d := New()
		assert.Empty(t, d.Deal(-1))
		assert.Empty(t, d.Deal(fullDeckCount+1))
		assert.Len(t, d, fullDeckCount)
	})

	t.Run("pop until empty", func(t *testing.T) {
		d := Deck{{Ace, Spades}, {Two, Hearts}}

		c, err := d.Pop()
		utils.AssertNoError(t, err)
		assert.Equal(t, Card{Two, Hearts}, c)

		_, err = d.Pop()
		utils.AssertNoError(t, err)

		_, err = d.Pop()
		utils.AssertErrorIs(t, err, ErrEmptyDeck)
	})
}

func TestDeckRemove(t *testing.T) {
	t.Run("takes out one copy", func(t *testing.T) {
		d := NewShoe(2)
		queen := Card{Rank: Queen, Suit: Hearts}

		utils.AssertTrue(t, d.Remove(queen))
		assert.Len(t, d, 2*fullDeckCount-1)
		assert.Contains(t, d, queen)

		utils.AssertTrue(t, d.Remove(queen))
		assert.NotContains(t, d, queen)
		assert.False(t, d.Remove(queen))
		assert.Len(t, d, 2*fullDeckCount-2)
	})
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", Join(nil))
	assert.Equal(t, "Ace of Spades, Ten of Clubs", Join([]Card{{Rank: Ace, Suit: Spades}, {Rank: Ten, Suit: Clubs}}))
}
