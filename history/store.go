package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/minaorangina/blackjack/deck"
	"github.com/minaorangina/blackjack/history/migrations"
	"github.com/minaorangina/blackjack/protocol"
	_ "modernc.org/sqlite"
)

const (
	DefaultLimit = 20
	MaxLimit     = 500
)

var (
	ErrPathRequired = errors.New("history path is required")
	ErrNotOpen      = errors.New("history is not open")
)

// Stats summarises every recorded round
type Stats struct {
	Rounds     int `json:"rounds"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Pushes     int `json:"pushes"`
	Blackjacks int `json:"blackjacks"`
}

// Log records finished rounds and reads them back
type Log interface {
	RecordRound(ctx context.Context, round protocol.Round) error
	RecentRounds(ctx context.Context, limit int) ([]protocol.Round, error)
	Stats(ctx context.Context) (Stats, error)
}

var _ Log = (*Store)(nil)

// Store keeps finished rounds in SQLite
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path and applies embedded migrations
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) RecordRound(ctx context.Context, round protocol.Round) error {
	if s == nil || s.sqlDB == nil {
		return ErrNotOpen
	}

	finishedAt := round.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO rounds (
		   game_id,
		   player_name,
		   player_cards,
		   dealer_cards,
		   player_points,
		   dealer_points,
		   outcome,
		   seed,
		   finished_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		round.GameID,
		round.PlayerName,
		encodeCards(round.Player),
		encodeCards(round.Dealer),
		round.PlayerPoints,
		round.DealerPoints,
		round.Outcome.String(),
		round.Seed,
		finishedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record round: %w", err)
	}

	return nil
}

// RecentRounds returns up to limit rounds, newest first
func (s *Store) RecentRounds(ctx context.Context, limit int) ([]protocol.Round, error) {
	if s == nil || s.sqlDB == nil {
		return nil, ErrNotOpen
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id, player_name, player_cards, dealer_cards, player_points,
		        dealer_points, outcome, seed, finished_at
		   FROM rounds
		  ORDER BY finished_at DESC, id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query rounds: %w", err)
	}
	defer rows.Close()

	rounds := []protocol.Round{}
	for rows.Next() {
		var (
			r                   protocol.Round
			playerCards, dealer string
			outcome             string
			finishedAt          int64
		)
		if err := rows.Scan(&r.GameID, &r.PlayerName, &playerCards, &dealer, &r.PlayerPoints,
			&r.DealerPoints, &outcome, &r.Seed, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}

		if r.Player, err = decodeCards(playerCards); err != nil {
			return nil, err
		}
		if r.Dealer, err = decodeCards(dealer); err != nil {
			return nil, err
		}
		if err := r.Outcome.UnmarshalText([]byte(outcome)); err != nil {
			return nil, err
		}
		r.FinishedAt = time.UnixMilli(finishedAt).UTC()

		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rounds: %w", err)
	}

	return rounds, nil
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	if s == nil || s.sqlDB == nil {
		return Stats{}, ErrNotOpen
	}

	var stats Stats
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome IN (?, ?, ?) THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome IN (?, ?) THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0)
		   FROM rounds`,
		protocol.PlayerBlackjack.String(), protocol.PlayerWin.String(), protocol.DealerBust.String(),
		protocol.DealerWin.String(), protocol.PlayerBust.String(),
		protocol.Push.String(),
		protocol.PlayerBlackjack.String(),
	)
	if err := row.Scan(&stats.Rounds, &stats.Wins, &stats.Losses, &stats.Pushes, &stats.Blackjacks); err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}

	return stats, nil
}

// cards are kept as their sprite IDs, e.g. "10,31,32"
func encodeCards(cards []deck.Card) string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = strconv.Itoa(c.ID())
	}
	return strings.Join(ids, ",")
}

func decodeCards(s string) ([]deck.Card, error) {
	cards := []deck.Card{}
	if s == "" {
		return cards, nil
	}

	for _, field := range strings.Split(s, ",") {
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("decode card %q: %w", field, err)
		}
		c, err := deck.CardFromID(id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return cards, nil
}
