package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/minaorangina/blackjack/deck"
	"github.com/minaorangina/blackjack/protocol"
)

var (
	ErrNilGame        = errors.New("game is nil")
	ErrRoundOver      = errors.New("round is already over")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNotPlayerTurn  = errors.New("not the player's turn")
	ErrCardNotInShoe  = errors.New("card is not in the shoe")
)

const initialPlayerCards = 2

// Opts configures a new round. Deck, Player and Dealer are for restoring
// or stacking a round; when Deck is nil a shuffled shoe is built from Seed.
type Opts struct {
	Seed   int64
	Decks  int
	Deck   deck.Deck
	Player []deck.Card
	Dealer []deck.Card
}

// Blackjack is one round between the player and the dealer
type Blackjack struct {
	Deck    deck.Deck
	Player  []deck.Card
	Dealer  []deck.Card
	Stage   Stage
	outcome protocol.Outcome
	seed    int64
}

// New shuffles and deals a round: one card to the dealer, then two to the player
func New(opts Opts) (*Blackjack, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	b := &Blackjack{
		Deck:   opts.Deck,
		Player: []deck.Card{},
		Dealer: []deck.Card{},
		Stage:  playerTurn,
		seed:   seed,
	}

	restoring := opts.Player != nil || opts.Dealer != nil

	if b.Deck == nil {
		b.Deck = deck.NewShoe(opts.Decks)
		if restoring {
			if err := removeCards(&b.Deck, opts.Player, opts.Dealer); err != nil {
				return nil, err
			}
		}
		b.Deck.Shuffle(rand.New(rand.NewSource(seed)))
	}

	if !restoring {
		if err := b.deal(); err != nil {
			return nil, err
		}
		return b, nil
	}

	b.Player = append(b.Player, opts.Player...)
	b.Dealer = append(b.Dealer, opts.Dealer...)
	if err := b.resume(); err != nil {
		return nil, err
	}

	return b, nil
}

// resume settles a restored round that is already decided
func (b *Blackjack) resume() error {
	switch {
	case IsBust(b.Player):
		b.finish(protocol.PlayerBust)
	case IsBlackjack(b.Player):
		return b.Stand()
	}
	return nil
}

func removeCards(d *deck.Deck, hands ...[]deck.Card) error {
	for _, hand := range hands {
		for _, c := range hand {
			if !d.Remove(c) {
				return fmt.Errorf("%w: %s", ErrCardNotInShoe, c)
			}
		}
	}
	return nil
}

func (b *Blackjack) deal() error {
	c, err := b.Deck.Pop()
	if err != nil {
		return fmt.Errorf("deal dealer: %w", err)
	}
	b.Dealer = append(b.Dealer, c)

	for i := 0; i < initialPlayerCards; i++ {
		c, err := b.Deck.Pop()
		if err != nil {
			return fmt.Errorf("deal player: %w", err)
		}
		b.Player = append(b.Player, c)
	}

	// a natural settles straight away
	if IsBlackjack(b.Player) {
		return b.Stand()
	}

	return nil
}

// Update runs one frame's command. Input after the round is over is ignored.
func (b *Blackjack) Update(cmd protocol.Cmd) error {
	if b == nil {
		return ErrNilGame
	}
	if b.IsOver() {
		return nil
	}

	switch cmd {
	case protocol.Hit:
		return b.Hit()
	case protocol.Stand:
		return b.Stand()
	case protocol.Null:
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

// Hit draws a card for the player
func (b *Blackjack) Hit() error {
	if b == nil {
		return ErrNilGame
	}
	if b.IsOver() {
		return ErrRoundOver
	}
	if b.Stage != playerTurn {
		return ErrNotPlayerTurn
	}

	c, err := b.Deck.Pop()
	if err != nil {
		return fmt.Errorf("hit: %w", err)
	}
	b.Player = append(b.Player, c)

	if IsBust(b.Player) {
		b.finish(protocol.PlayerBust)
	}

	return nil
}

// Stand ends the player's turn. The dealer draws to 17 and the round is settled.
func (b *Blackjack) Stand() error {
	if b == nil {
		return ErrNilGame
	}
	if b.IsOver() {
		return ErrRoundOver
	}

	b.Stage = dealerTurn
	for Points(b.Dealer) < dealerStandOn {
		c, err := b.Deck.Pop()
		if err != nil {
			return fmt.Errorf("dealer draw: %w", err)
		}
		b.Dealer = append(b.Dealer, c)
	}

	b.finish(b.settle())
	return nil
}

func (b *Blackjack) settle() protocol.Outcome {
	playerNatural, dealerNatural := IsBlackjack(b.Player), IsBlackjack(b.Dealer)
	player, dealer := Points(b.Player), Points(b.Dealer)

	switch {
	case playerNatural && !dealerNatural:
		return protocol.PlayerBlackjack
	case dealer > blackjack:
		return protocol.DealerBust
	case dealerNatural && !playerNatural:
		return protocol.DealerWin
	case player > dealer:
		return protocol.PlayerWin
	case player < dealer:
		return protocol.DealerWin
	}

	return protocol.Push
}

func (b *Blackjack) finish(o protocol.Outcome) {
	b.outcome = o
	b.Stage = roundOver
}

func (b *Blackjack) IsOver() bool {
	return b.Stage == roundOver
}

// IsClear reports whether the player won the round
func (b *Blackjack) IsClear() bool {
	return b.outcome.PlayerWon()
}

func (b *Blackjack) Outcome() protocol.Outcome {
	return b.outcome
}

func (b *Blackjack) Seed() int64 {
	return b.seed
}

// State snapshots the round for rendering and transport
func (b *Blackjack) State(gameID, name string) protocol.TableState {
	return protocol.TableState{
		GameID:       gameID,
		PlayerName:   name,
		Player:       append([]deck.Card{}, b.Player...),
		Dealer:       append([]deck.Card{}, b.Dealer...),
		PlayerPoints: Points(b.Player),
		DealerPoints: Points(b.Dealer),
		Over:         b.IsOver(),
		Clear:        b.IsClear(),
		Outcome:      b.outcome,
		Seed:         b.seed,
		DeckCount:    len(b.Deck),
	}
}

// Round is the history record of a finished round
func (b *Blackjack) Round(gameID, name string) protocol.Round {
	return protocol.Round{
		GameID:       gameID,
		PlayerName:   name,
		Player:       append([]deck.Card{}, b.Player...),
		Dealer:       append([]deck.Card{}, b.Dealer...),
		PlayerPoints: Points(b.Player),
		DealerPoints: Points(b.Dealer),
		Outcome:      b.outcome,
		Seed:         b.seed,
		FinishedAt:   time.Now().UTC(),
	}
}
