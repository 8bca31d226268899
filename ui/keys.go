package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/minaorangina/blackjack/engine"
	"github.com/minaorangina/blackjack/protocol"
)

type binding struct {
	key ebiten.Key
	cmd protocol.Cmd
}

// keyBindings are checked in order, the first key pressed wins
var keyBindings = []binding{
	{ebiten.KeyEscape, protocol.Quit},
	{ebiten.KeySpace, protocol.Restart},
	{ebiten.KeyArrowLeft, protocol.Hit},
	{ebiten.KeyArrowRight, protocol.Stand},
}

// keyInput turns the keys that went down this frame into engine input
func keyInput(justPressed func(ebiten.Key) bool, anyKey bool) engine.Input {
	in := engine.Input{KeyDown: anyKey}

	for _, b := range keyBindings {
		if justPressed(b.key) {
			in.Cmd = b.cmd
			in.KeyDown = true
			break
		}
	}

	return in
}
