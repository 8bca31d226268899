package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/minaorangina/blackjack/game"
	utils "github.com/minaorangina/blackjack/internal"
	"github.com/minaorangina/blackjack/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, opts Opts) *Session {
	t.Helper()

	s, err := NewSession(context.Background(), opts)
	require.NoError(t, err)
	return s
}

func TestSessionApply(t *testing.T) {
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		s := newSession(t, Opts{PlayerName: "Ada", NewGame: twoHitsToBust()})

		msg, err := s.Apply(ctx, protocol.Hit)
		utils.AssertNoError(t, err)
		assert.Equal(t, s.ID(), msg.GameID)
		assert.Equal(t, s.PlayerID(), msg.PlayerID)
		assert.Equal(t, protocol.Hit, msg.Command)
		assert.True(t, msg.ShouldRespond)
		require.NotNil(t, msg.State)
		assert.Len(t, msg.State.Player, 3)
	})

	t.Run("round over", func(t *testing.T) {
		s := newSession(t, Opts{NewGame: twoHitsToBust()})

		msg, err := s.Apply(ctx, protocol.Stand)
		utils.AssertNoError(t, err)
		assert.Equal(t, protocol.RoundOver, msg.Command)
		assert.Equal(t, protocol.DealerWin.Text(), msg.Message)
		assert.False(t, msg.ShouldRespond)
	})

	t.Run("errors from the round", func(t *testing.T) {
		s := newSession(t, Opts{NewGame: twoHitsToBust()})
		_, err := s.Apply(ctx, protocol.Stand)
		require.NoError(t, err)

		_, err = s.Apply(ctx, protocol.Hit)
		utils.AssertErrorIs(t, err, game.ErrRoundOver)
	})

	t.Run("concurrent commands", func(t *testing.T) {
		s := newSession(t, Opts{Seed: 9})

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = s.Apply(ctx, protocol.Hit)
				_ = s.State()
			}()
		}
		wg.Wait()

		assert.True(t, s.State().Over)
	})
}

func TestSessionSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("subscribers see every command", func(t *testing.T) {
		s := newSession(t, Opts{NewGame: twoHitsToBust()})
		updates, unsubscribe := s.Subscribe()
		defer unsubscribe()

		_, err := s.Apply(ctx, protocol.Hit)
		require.NoError(t, err)

		utils.Within(t, time.Second, func() {
			msg := <-updates
			assert.Equal(t, protocol.Hit, msg.Command)
		})
	})

	t.Run("state requests and empty commands are not broadcast", func(t *testing.T) {
		s := newSession(t, Opts{NewGame: twoHitsToBust()})
		updates, unsubscribe := s.Subscribe()
		defer unsubscribe()

		_, err := s.Apply(ctx, protocol.State)
		require.NoError(t, err)
		_, err = s.Apply(ctx, protocol.Null)
		require.NoError(t, err)
		assert.Len(t, updates, 0)
	})

	t.Run("unsubscribing closes the channel", func(t *testing.T) {
		s := newSession(t, Opts{})
		updates, unsubscribe := s.Subscribe()
		unsubscribe()
		unsubscribe()

		_, ok := <-updates
		assert.False(t, ok)
	})
}
