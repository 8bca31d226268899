package terminal

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/minaorangina/blackjack/engine"
	"github.com/minaorangina/blackjack/protocol"
)

var keyToCmd = map[byte]protocol.Cmd{
	'h': protocol.Hit,
	's': protocol.Stand,
	'r': protocol.Restart,
	'q': protocol.Quit,
}

type event struct {
	line string
	err  error
}

// Input reads lines on its own goroutine so that polling never blocks a frame
type Input struct {
	events chan event
	out    io.Writer
}

func NewInput(ctx context.Context, in io.Reader, out io.Writer) *Input {
	i := &Input{
		events: make(chan event),
		out:    out,
	}
	go i.read(ctx, in)
	return i
}

func (i *Input) read(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case i.events <- event{line: scanner.Text()}:
		case <-ctx.Done():
			return
		}
	}

	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	select {
	case i.events <- event{err: err}:
	case <-ctx.Done():
	}
}

// Poll returns the next key typed, if any. End of input quits.
func (i *Input) Poll() (engine.Input, error) {
	select {
	case ev := <-i.events:
		if ev.err == io.EOF {
			return engine.Input{Cmd: protocol.Quit, KeyDown: true}, nil
		}
		if ev.err != nil {
			return engine.Input{}, ev.err
		}
		return i.parse(ev.line), nil
	default:
		return engine.Input{}, nil
	}
}

func (i *Input) parse(line string) engine.Input {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return engine.Input{KeyDown: true}
	}

	cmd, ok := keyToCmd[line[0]]
	if !ok {
		SendText(i.out, unknownText, line)
		return engine.Input{KeyDown: true}
	}

	return engine.Input{Cmd: cmd, KeyDown: true}
}

// Play runs e against a text terminal until the player quits or input ends
func Play(ctx context.Context, e *engine.Engine, in io.Reader, out io.Writer, pacer *engine.Pacer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	SendText(out, helpText)
	return e.Run(ctx, NewInput(ctx, in, out), NewView(out), pacer)
}
