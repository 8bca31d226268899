package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/minaorangina/blackjack/internal/tabletest"
	"github.com/minaorangina/blackjack/protocol"
)

var (
	twoHitsToBust = tabletest.TwoHitsToBust
	natural       = tabletest.Natural
)

type spyRecorder struct {
	mu     sync.Mutex
	rounds []protocol.Round
	err    error
}

func (r *spyRecorder) RecordRound(_ context.Context, round protocol.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.rounds = append(r.rounds, round)
	return nil
}

func (r *spyRecorder) Rounds() []protocol.Round {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]protocol.Round{}, r.rounds...)
}

var errPoll = errors.New("keyboard on fire")

// scriptedInput plays back inputs, then reports Null forever
type scriptedInput struct {
	inputs []Input
	err    error
}

func (s *scriptedInput) Poll() (Input, error) {
	if s.err != nil {
		return Input{}, s.err
	}
	if len(s.inputs) == 0 {
		return Input{}, nil
	}
	in := s.inputs[0]
	s.inputs = s.inputs[1:]
	return in, nil
}

type spyView struct {
	frames []protocol.TableState
}

func (v *spyView) Render(state protocol.TableState) error {
	v.frames = append(v.frames, state)
	return nil
}

func key(cmd protocol.Cmd) Input {
	return Input{Cmd: cmd, KeyDown: true}
}
