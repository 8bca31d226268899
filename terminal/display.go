package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/blackjack/deck"
	"github.com/minaorangina/blackjack/layout"
	"github.com/minaorangina/blackjack/protocol"
)

const (
	helpText    = "Keys: h = hit, s = stand, r = restart when the round is over, q = quit\n"
	promptText  = layout.Prompt + " [h/s] "
	restartText = "Press r to restart or q to quit "
	unknownText = "Unknown key %q. Use h, s, r or q\n"
	dividerText = "----------------------------------------\n"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// View writes the table as text whenever it changes
type View struct {
	out  io.Writer
	last string
}

func NewView(out io.Writer) *View {
	return &View{out: out}
}

func (v *View) Render(state protocol.TableState) error {
	text := buildTableText(state)
	if text == v.last {
		return nil
	}
	v.last = text

	_, err := io.WriteString(v.out, text)
	return err
}

func buildTableText(state protocol.TableState) string {
	var b strings.Builder

	b.WriteString(dividerText)
	fmt.Fprintf(&b, "Dealer (%d): %s\n", state.DealerPoints, deck.Join(state.Dealer))
	fmt.Fprintf(&b, "You    (%d): %s\n", state.PlayerPoints, deck.Join(state.Player))

	if !state.Over {
		b.WriteString(promptText)
		return b.String()
	}

	fmt.Fprintf(&b, "\n%s\n", state.Outcome.Text())
	b.WriteString(restartText)
	return b.String()
}
