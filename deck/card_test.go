package deck

import (
	"math/rand"
	"testing"

	utils "github.com/minaorangina/blackjack/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCard(t *testing.T) {
	cases := []struct {
		name     string
		rank     int
		suit     int
		expected string
	}{
		{"Lowest value card", 0, 0, "Ace of Clubs"},
		{"Specific card", 11, 2, "Queen of Hearts"},
		{"Highest value card", 12, 3, "King of Spades"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			card, err := NewCard(c.rank, c.suit)
			utils.AssertNoError(t, err)
			utils.AssertEqual(t, card.String(), c.expected)
		})
	}

	t.Run("out of range", func(t *testing.T) {
		_, err := NewCard(13, 2)
		utils.AssertErrorIs(t, err, ErrCardOutOfRange)

		_, err = NewCard(4, 4)
		utils.AssertErrorIs(t, err, ErrCardOutOfRange)
	})

	t.Run("get rank", func(t *testing.T) {
		six, err := NewCard(5, rand.Intn(4))
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, six.Rank.String(), "Six")
	})

	t.Run("get suit", func(t *testing.T) {
		spade, err := NewCard(rand.Intn(13), 3)
		utils.AssertNoError(t, err)
		utils.AssertEqual(t, spade.Suit.String(), "Spades")
	})
}

func TestCardID(t *testing.T) {
	t.Run("ids cover 1 to 52", func(t *testing.T) {
		seen := map[int]bool{}
		for _, c := range New() {
			id := c.ID()
			assert.GreaterOrEqual(t, id, 1)
			assert.LessOrEqual(t, id, 52)
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, 52)
	})

	t.Run("round trips through CardFromID", func(t *testing.T) {
		for id := 1; id <= 52; id++ {
			c, err := CardFromID(id)
			require.NoError(t, err)
			assert.Equal(t, id, c.ID())
		}
	})

	t.Run("rejects ids outside the deck", func(t *testing.T) {
		for _, id := range []int{0, 53, -1} {
			_, err := CardFromID(id)
			assert.ErrorIs(t, err, ErrCardOutOfRange)
		}
	})

	t.Run("number and mark", func(t *testing.T) {
		aceOfClubs := Card{Ace, Clubs}
		assert.Equal(t, 1, aceOfClubs.Number())
		assert.Equal(t, 0, aceOfClubs.Mark())

		queenOfHearts := Card{Queen, Hearts}
		assert.Equal(t, 12, queenOfHearts.Number())
		assert.Equal(t, 2, queenOfHearts.Mark())

		kingOfSpades := Card{King, Spades}
		assert.Equal(t, 52, kingOfSpades.ID())
		assert.Equal(t, 0, kingOfSpades.Number())
		assert.Equal(t, 3, kingOfSpades.Mark())
	})
}

func TestCardPoints(t *testing.T) {
	cases := []struct {
		rank Rank
		want int
	}{
		{Ace, 11},
		{Two, 2},
		{Five, 5},
		{Nine, 9},
		{Ten, 10},
		{Jack, 10},
		{Queen, 10},
		{King, 10},
	}

	for _, c := range cases {
		t.Run(c.rank.String(), func(t *testing.T) {
			assert.Equal(t, c.want, Card{Rank: c.rank, Suit: Hearts}.Points())
		})
	}
}
