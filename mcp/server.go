package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/minaorangina/blackjack/deck"
	"github.com/minaorangina/blackjack/engine"
	"github.com/minaorangina/blackjack/history"
	"github.com/minaorangina/blackjack/logging"
	"github.com/minaorangina/blackjack/protocol"
	"github.com/minaorangina/blackjack/store"
)

const (
	serverName    = "Blackjack"
	serverVersion = "1.0.0"
	defaultName   = "Player"
)

var ErrHistoryDisabled = errors.New("history is disabled")

type Opts struct {
	Decks   int
	History history.Log
	Logger  logging.Logger
	// Session is the base for every new game
	Session engine.Opts
}

// Server exposes blackjack games as MCP tools
type Server struct {
	store     store.GameStore
	history   history.Log
	opts      Opts
	logger    logging.Logger
	mcpServer *server.MCPServer
}

func NewServer(gameStore store.GameStore, opts Opts) *Server {
	s := &Server{
		store:   gameStore,
		history: opts.History,
		opts:    opts,
		logger:  logging.OrNop(opts.Logger),
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Blackjack against the dealer.

Start with new_game, then hit to draw a card or stand to let the dealer play.
Aces count 11 unless that would bust you, face cards count 10. Over 21 is a bust.
The dealer draws until reaching at least 17. When a round is over use restart
to deal the next one. history shows finished rounds and your record.`),
	)
	s.registerTools()

	return s
}

// MCPServer returns the underlying MCP server for serving
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin and stdout until input ends
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func gameIDSchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"game_id": map[string]interface{}{
				"type":        "string",
				"description": "Game ID returned by new_game",
			},
		},
		Required: []string{"game_id"},
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Deal a new game of blackjack",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Player name (optional)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "hit",
		Description: "Draw another card",
		InputSchema: gameIDSchema(),
	}, s.commandHandler(protocol.Hit))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "stand",
		Description: "Keep your hand and let the dealer play",
		InputSchema: gameIDSchema(),
	}, s.commandHandler(protocol.Stand))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "restart",
		Description: "Deal the next round once the current one is over",
		InputSchema: gameIDSchema(),
	}, s.commandHandler(protocol.Restart))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Show the table",
		InputSchema: gameIDSchema(),
	}, s.commandHandler(protocol.State))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "history",
		Description: "Show recently finished rounds and the overall record",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": fmt.Sprintf("Number of rounds to show (default %d)", history.DefaultLimit),
				},
			},
		},
	}, s.handleHistory)
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	name, _ := args["name"].(string)
	if strings.TrimSpace(name) == "" {
		name = defaultName
	}

	opts := s.opts.Session
	opts.PlayerName = name
	opts.Decks = s.opts.Decks
	opts.Logger = s.logger
	if s.history != nil {
		opts.Recorder = s.history
	}

	session, err := engine.NewSession(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.store.AddGame(session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("New game %s for %s.\n\n%s", session.ID(), name, formatTable(session.State()))
	return mcp.NewToolResultText(text), nil
}

func (s *Server) commandHandler(cmd protocol.Cmd) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})
		gameID, _ := args["game_id"].(string)

		session := s.store.FindGame(gameID)
		if session == nil {
			return mcp.NewToolResultError(fmt.Sprintf("unknown game ID '%s'", gameID)), nil
		}

		msg, err := session.Apply(ctx, cmd)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(formatTable(*msg.State)), nil
	}
}

func (s *Server) handleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.history == nil {
		return mcp.NewToolResultError(ErrHistoryDisabled.Error()), nil
	}

	args, _ := request.Params.Arguments.(map[string]interface{})
	limit := 0
	if n, ok := args["limit"].(float64); ok {
		limit = int(n)
	}

	rounds, err := s.history.RecentRounds(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stats, err := s.history.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(rounds, stats)), nil
}

func formatTable(state protocol.TableState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dealer (%d): %s\n", state.DealerPoints, deck.Join(state.Dealer))
	fmt.Fprintf(&b, "You (%d): %s\n", state.PlayerPoints, deck.Join(state.Player))

	if state.Over {
		fmt.Fprintf(&b, "\n%s. Use restart to deal again.", state.Outcome.Text())
	} else {
		b.WriteString("\nHit or stand?")
	}

	return b.String()
}

func formatHistory(rounds []protocol.Round, stats history.Stats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Rounds: %d, won: %d, lost: %d, pushed: %d, blackjacks: %d\n",
		stats.Rounds, stats.Wins, stats.Losses, stats.Pushes, stats.Blackjacks)

	for _, r := range rounds {
		fmt.Fprintf(&b, "%s %s: %d vs dealer %d, %s\n",
			r.FinishedAt.Format("2006-01-02 15:04"), r.PlayerName, r.PlayerPoints, r.DealerPoints, r.Outcome.Text())
	}

	return b.String()
}
