package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/minaorangina/blackjack/game"
	"github.com/minaorangina/blackjack/logging"
	"github.com/minaorangina/blackjack/protocol"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrRoundInProgress    = errors.New("round is still in progress")
	ErrUnsupportedCommand = errors.New("unsupported command")
)

// NewID constructs a game or player ID
func NewID() string {
	return uuid.NewV4().String()
}

// Recorder keeps finished rounds
type Recorder interface {
	RecordRound(ctx context.Context, round protocol.Round) error
}

// Input is one frame's worth of player input
type Input struct {
	Cmd     protocol.Cmd
	KeyDown bool
}

type Opts struct {
	GameID     string
	PlayerName string
	// Seed only applies to the first round, restarts draw a fresh one
	Seed     int64
	Decks    int
	Debug    bool
	Recorder Recorder
	Logger   logging.Logger
	NewGame  func(game.Opts) (*game.Blackjack, error)
}

// Engine drives rounds of blackjack for one player
type Engine struct {
	id       string
	name     string
	decks    int
	debug    bool
	game     *game.Blackjack
	recorded bool
	recorder Recorder
	logger   logging.Logger
	newGame  func(game.Opts) (*game.Blackjack, error)
}

// New constructs an Engine and deals the first round
func New(ctx context.Context, opts Opts) (*Engine, error) {
	e := &Engine{
		id:       opts.GameID,
		name:     opts.PlayerName,
		decks:    opts.Decks,
		debug:    opts.Debug,
		recorder: opts.Recorder,
		logger:   logging.OrNop(opts.Logger),
		newGame:  opts.NewGame,
	}
	if e.id == "" {
		e.id = NewID()
	}
	if e.newGame == nil {
		e.newGame = game.New
	}

	if err := e.deal(ctx, opts.Seed); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Engine) ID() string {
	return e.id
}

func (e *Engine) Name() string {
	return e.name
}

func (e *Engine) Game() *game.Blackjack {
	return e.game
}

func (e *Engine) State() protocol.TableState {
	return e.game.State(e.id, e.name)
}

// Step applies one frame of input. Quit is reported rather than acted on.
// In debug mode the round only advances on frames where a key went down.
func (e *Engine) Step(ctx context.Context, in Input) (bool, error) {
	switch in.Cmd {
	case protocol.Quit:
		return true, nil

	case protocol.Restart:
		if !e.game.IsOver() {
			return false, nil
		}
		return false, e.deal(ctx, 0)
	}

	if e.debug && !in.KeyDown {
		return false, nil
	}

	if in.Cmd != protocol.Null {
		e.logger.Debugw("command", "game", e.id, "cmd", in.Cmd.String())
	}

	if err := e.game.Update(in.Cmd); err != nil {
		return false, err
	}

	e.recordIfOver(ctx)
	return false, nil
}

// Play applies a command strictly: acting on a finished round, or restarting
// one still in progress, is an error.
func (e *Engine) Play(ctx context.Context, cmd protocol.Cmd) error {
	var err error
	switch cmd {
	case protocol.Hit:
		err = e.game.Hit()
	case protocol.Stand:
		err = e.game.Stand()
	case protocol.Restart:
		if !e.game.IsOver() {
			return ErrRoundInProgress
		}
		return e.deal(ctx, 0)
	case protocol.State, protocol.Null:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedCommand, cmd)
	}
	if err != nil {
		return err
	}

	e.logger.Debugw("command", "game", e.id, "cmd", cmd.String())
	e.recordIfOver(ctx)
	return nil
}

func (e *Engine) deal(ctx context.Context, seed int64) error {
	g, err := e.newGame(game.Opts{Seed: seed, Decks: e.decks})
	if err != nil {
		return fmt.Errorf("new round: %w", err)
	}

	e.game = g
	e.recorded = false
	e.logger.Infow("new round", "game", e.id, "seed", g.Seed())

	e.recordIfOver(ctx)
	return nil
}

func (e *Engine) recordIfOver(ctx context.Context) {
	if !e.game.IsOver() || e.recorded {
		return
	}
	e.recorded = true

	round := e.game.Round(e.id, e.name)
	e.logger.Infow("round over",
		"game", e.id,
		"outcome", round.Outcome.String(),
		"player", round.PlayerPoints,
		"dealer", round.DealerPoints,
	)

	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordRound(ctx, round); err != nil {
		e.logger.Errorw("could not record round", "game", e.id, "error", err)
	}
}
