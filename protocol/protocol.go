package protocol

import "fmt"

type Cmd int

const (
	Null Cmd = iota
	Hit
	Stand
	Restart
	Quit
	NewGame
	State
	Error
	RoundOver
)

var CmdNames = map[Cmd]string{
	Null:      "Null",
	Hit:       "Hit",
	Stand:     "Stand",
	Restart:   "Restart",
	Quit:      "Quit",
	NewGame:   "NewGame",
	State:     "State",
	Error:     "Error",
	RoundOver: "RoundOver",
}

var NameToCmd = map[string]Cmd{
	"Null":      Null,
	"Hit":       Hit,
	"Stand":     Stand,
	"Restart":   Restart,
	"Quit":      Quit,
	"NewGame":   NewGame,
	"State":     State,
	"Error":     Error,
	"RoundOver": RoundOver,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

func (c Cmd) MarshalText() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return []byte(name), nil
}

func (c *Cmd) UnmarshalText(text []byte) error {
	cmd, ok := NameToCmd[string(text)]
	if !ok {
		return fmt.Errorf("unknown command %q", text)
	}
	*c = cmd
	return nil
}

// Outcome is how a round was settled
type Outcome int

const (
	Undecided Outcome = iota
	PlayerBlackjack
	PlayerWin
	DealerBust
	Push
	DealerWin
	PlayerBust
)

var OutcomeNames = map[Outcome]string{
	Undecided:       "Undecided",
	PlayerBlackjack: "PlayerBlackjack",
	PlayerWin:       "PlayerWin",
	DealerBust:      "DealerBust",
	Push:            "Push",
	DealerWin:       "DealerWin",
	PlayerBust:      "PlayerBust",
}

var NameToOutcome = map[string]Outcome{
	"Undecided":       Undecided,
	"PlayerBlackjack": PlayerBlackjack,
	"PlayerWin":       PlayerWin,
	"DealerBust":      DealerBust,
	"Push":            Push,
	"DealerWin":       DealerWin,
	"PlayerBust":      PlayerBust,
}

var outcomeText = map[Outcome]string{
	Undecided:       "",
	PlayerBlackjack: "Blackjack! You win",
	PlayerWin:       "You win",
	DealerBust:      "Dealer busts, you win",
	Push:            "Push",
	DealerWin:       "Dealer wins",
	PlayerBust:      "Bust! Dealer wins",
}

func (o Outcome) String() string {
	return OutcomeNames[o]
}

// Text is the human readable result line
func (o Outcome) Text() string {
	return outcomeText[o]
}

// PlayerWon reports whether the player took the round
func (o Outcome) PlayerWon() bool {
	return o == PlayerBlackjack || o == PlayerWin || o == DealerBust
}

func (o Outcome) MarshalText() ([]byte, error) {
	name, ok := OutcomeNames[o]
	if !ok {
		return nil, fmt.Errorf("unknown outcome %d", int(o))
	}
	return []byte(name), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	outcome, ok := NameToOutcome[string(text)]
	if !ok {
		return fmt.Errorf("unknown outcome %q", text)
	}
	*o = outcome
	return nil
}
