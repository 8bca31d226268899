package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/minaorangina/blackjack/game"
	utils "github.com/minaorangina/blackjack/internal"
	"github.com/minaorangina/blackjack/internal/tabletest"
	"github.com/minaorangina/blackjack/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newEngine(t *testing.T, opts Opts) *Engine {
	t.Helper()

	e, err := New(context.Background(), opts)
	require.NoError(t, err)
	return e
}

func TestNewEngine(t *testing.T) {
	t.Run("deals a round and assigns an ID", func(t *testing.T) {
		e := newEngine(t, Opts{PlayerName: "Ada", Seed: 42})

		assert.NotEmpty(t, e.ID())
		assert.Equal(t, "Ada", e.Name())
		assert.Equal(t, int64(42), e.Game().Seed())
		assert.Len(t, e.State().Player, 2)
	})

	t.Run("keeps a given ID", func(t *testing.T) {
		e := newEngine(t, Opts{GameID: "table-1"})
		assert.Equal(t, "table-1", e.State().GameID)
	})

	t.Run("dealing error", func(t *testing.T) {
		_, err := New(context.Background(), Opts{NewGame: tabletest.Stacked()})
		assert.Error(t, err)
	})
}

func TestStep(t *testing.T) {
	ctx := context.Background()

	t.Run("hit and stand", func(t *testing.T) {
		e := newEngine(t, Opts{NewGame: twoHitsToBust()})

		quit, err := e.Step(ctx, key(protocol.Hit))
		utils.AssertNoError(t, err)
		assert.False(t, quit)
		assert.Len(t, e.State().Player, 3)

		_, err = e.Step(ctx, key(protocol.Stand))
		utils.AssertNoError(t, err)
		assert.True(t, e.State().Over)
		assert.Equal(t, protocol.PlayerWin, e.State().Outcome)
	})

	t.Run("quit is reported", func(t *testing.T) {
		e := newEngine(t, Opts{})

		quit, err := e.Step(ctx, key(protocol.Quit))
		utils.AssertNoError(t, err)
		assert.True(t, quit)
	})

	t.Run("restart is ignored mid round", func(t *testing.T) {
		e := newEngine(t, Opts{NewGame: twoHitsToBust()})
		before := e.Game()

		_, err := e.Step(ctx, key(protocol.Restart))
		utils.AssertNoError(t, err)
		assert.Same(t, before, e.Game())
	})

	t.Run("restart after the round deals a new one", func(t *testing.T) {
		e := newEngine(t, Opts{NewGame: twoHitsToBust()})
		_, err := e.Step(ctx, key(protocol.Stand))
		require.NoError(t, err)
		require.True(t, e.State().Over)
		before := e.Game()

		_, err = e.Step(ctx, key(protocol.Restart))
		utils.AssertNoError(t, err)
		assert.NotSame(t, before, e.Game())
		assert.False(t, e.State().Over)
	})

	t.Run("input after the round is ignored", func(t *testing.T) {
		e := newEngine(t, Opts{NewGame: twoHitsToBust()})
		_, err := e.Step(ctx, key(protocol.Stand))
		require.NoError(t, err)
		cards := len(e.State().Player)

		_, err = e.Step(ctx, key(protocol.Hit))
		utils.AssertNoError(t, err)
		assert.Len(t, e.State().Player, cards)
	})

	t.Run("debug mode only advances on key down", func(t *testing.T) {
		e := newEngine(t, Opts{Debug: true, NewGame: twoHitsToBust()})

		_, err := e.Step(ctx, Input{Cmd: protocol.Hit})
		utils.AssertNoError(t, err)
		assert.Len(t, e.State().Player, 2)

		_, err = e.Step(ctx, key(protocol.Hit))
		utils.AssertNoError(t, err)
		assert.Len(t, e.State().Player, 3)
	})

	t.Run("unknown command", func(t *testing.T) {
		e := newEngine(t, Opts{NewGame: twoHitsToBust()})

		_, err := e.Step(ctx, key(protocol.NewGame))
		utils.AssertErrorIs(t, err, game.ErrUnknownCommand)
	})
}

func TestRecording(t *testing.T) {
	ctx := context.Background()

	t.Run("a bust is recorded once", func(t *testing.T) {
		rec := &spyRecorder{}
		e := newEngine(t, Opts{PlayerName: "Ada", Recorder: rec, NewGame: twoHitsToBust()})

		for i := 0; i < 4; i++ {
			_, err := e.Step(ctx, key(protocol.Hit))
			require.NoError(t, err)
		}

		rounds := rec.Rounds()
		require.Len(t, rounds, 1)
		assert.Equal(t, protocol.PlayerBust, rounds[0].Outcome)
		assert.Equal(t, "Ada", rounds[0].PlayerName)
		assert.Equal(t, e.ID(), rounds[0].GameID)
	})

	t.Run("a natural is recorded as soon as it is dealt", func(t *testing.T) {
		rec := &spyRecorder{}
		e := newEngine(t, Opts{Recorder: rec, NewGame: natural()})

		assert.True(t, e.State().Over)
		rounds := rec.Rounds()
		require.Len(t, rounds, 1)
		assert.Equal(t, protocol.PlayerBlackjack, rounds[0].Outcome)
	})

	t.Run("every round is recorded", func(t *testing.T) {
		rec := &spyRecorder{}
		e := newEngine(t, Opts{Recorder: rec, NewGame: twoHitsToBust()})

		for _, cmd := range []protocol.Cmd{protocol.Stand, protocol.Restart, protocol.Stand} {
			_, err := e.Step(ctx, key(cmd))
			require.NoError(t, err)
		}

		assert.Len(t, rec.Rounds(), 2)
	})

	t.Run("recorder errors are logged, not returned", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		rec := &spyRecorder{err: errors.New("disk full")}
		e := newEngine(t, Opts{Recorder: rec, Logger: zap.New(core).Sugar(), NewGame: twoHitsToBust()})

		_, err := e.Step(ctx, key(protocol.Stand))
		utils.AssertNoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("could not record round").Len())
		assert.Equal(t, 1, logs.FilterMessage("round over").Len())
	})
}

func TestPlay(t *testing.T) {
	ctx := context.Background()

	t.Run("acting on a finished round", func(t *testing.T) {
		e := newEngine(t, Opts{NewGame: twoHitsToBust()})
		require.NoError(t, e.Play(ctx, protocol.Stand))

		utils.AssertErrorIs(t, e.Play(ctx, protocol.Hit), game.ErrRoundOver)
		utils.AssertErrorIs(t, e.Play(ctx, protocol.Stand), game.ErrRoundOver)
	})

	t.Run("restarting a round in progress", func(t *testing.T) {
		e := newEngine(t, Opts{NewGame: twoHitsToBust()})
		utils.AssertErrorIs(t, e.Play(ctx, protocol.Restart), ErrRoundInProgress)
	})

	t.Run("restart", func(t *testing.T) {
		e := newEngine(t, Opts{NewGame: twoHitsToBust()})
		require.NoError(t, e.Play(ctx, protocol.Hit))
		require.NoError(t, e.Play(ctx, protocol.Hit))
		require.True(t, e.State().Over)

		utils.AssertNoError(t, e.Play(ctx, protocol.Restart))
		assert.False(t, e.State().Over)
	})

	t.Run("state is a no-op", func(t *testing.T) {
		e := newEngine(t, Opts{NewGame: twoHitsToBust()})
		utils.AssertNoError(t, e.Play(ctx, protocol.State))
		assert.Len(t, e.State().Player, 2)
	})

	t.Run("quit cannot be played remotely", func(t *testing.T) {
		e := newEngine(t, Opts{})
		utils.AssertErrorIs(t, e.Play(ctx, protocol.Quit), ErrUnsupportedCommand)
	})
}
