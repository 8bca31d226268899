package layout

import (
	"fmt"
	"image"
	"io"

	"github.com/minaorangina/blackjack/assets"
	"github.com/minaorangina/blackjack/deck"
	"github.com/minaorangina/blackjack/protocol"
)

const (
	ScreenWidth  = 600
	ScreenHeight = 640
	CardWidth    = 124
	CardHeight   = 176

	Prompt  = "Hit or Stand ?"
	Restart = "Space: restart"
)

const (
	marginX      = 50
	dealerY      = 50
	playerY      = 320
	overlapY     = 35
	cardsPerRow  = 4
	labelOffsetY = 34
	textX        = 200
	bottomY      = 600
	outcomeY     = 560
)

// KeyHelp is printed when the window opens
var KeyHelp = []string{
	"Keys:",
	"  Left   : Hit",
	"  Right  : Stand",
	"  Space  : Restart when game over",
	"  Escape : Quit",
}

func PrintKeys(w io.Writer) error {
	for _, line := range KeyHelp {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Sprite is a card drawn at Pos, with the image it should be drawn from
type Sprite struct {
	Card deck.Card
	Name string
	Pos  image.Point
}

// Rect is the card's screen rectangle
func (s Sprite) Rect() image.Rectangle {
	return image.Rect(s.Pos.X, s.Pos.Y, s.Pos.X+CardWidth, s.Pos.Y+CardHeight)
}

type Text struct {
	Text string
	Pos  image.Point
}

// Frame is everything drawn for one table state, in draw order
type Frame struct {
	Sprites []Sprite
	Texts   []Text
}

// DealerCard is where the dealer's ith card goes. Rows of four overlap downwards.
func DealerCard(i int) image.Point {
	return cardAt(i, dealerY)
}

// PlayerCard is where the player's ith card goes
func PlayerCard(i int) image.Point {
	return cardAt(i, playerY)
}

func cardAt(i, top int) image.Point {
	return image.Pt(marginX+CardWidth*(i%cardsPerRow), top+overlapY*(i/cardsPerRow))
}

// Table lays out a table state
func Table(state protocol.TableState) Frame {
	f := Frame{
		Sprites: make([]Sprite, 0, len(state.Dealer)+len(state.Player)),
	}

	for i, c := range state.Dealer {
		f.Sprites = append(f.Sprites, Sprite{Card: c, Name: assets.SpriteName(c), Pos: DealerCard(i)})
	}
	for i, c := range state.Player {
		f.Sprites = append(f.Sprites, Sprite{Card: c, Name: assets.SpriteName(c), Pos: PlayerCard(i)})
	}

	f.Texts = append(f.Texts,
		Text{Text: fmt.Sprintf("Dealer: %d", state.DealerPoints), Pos: image.Pt(marginX, dealerY-labelOffsetY)},
		Text{Text: fmt.Sprintf("You: %d", state.PlayerPoints), Pos: image.Pt(marginX, playerY-labelOffsetY)},
	)

	if !state.Over {
		f.Texts = append(f.Texts, Text{Text: Prompt, Pos: image.Pt(textX, bottomY)})
		return f
	}

	f.Texts = append(f.Texts,
		Text{Text: state.Outcome.Text(), Pos: image.Pt(textX, outcomeY)},
		Text{Text: Restart, Pos: image.Pt(textX, bottomY)},
	)

	return f
}
