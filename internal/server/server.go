// Package server assembles the MCP server: database pool, Nutritionix
// client, tool registration, and the stdio transport.
package server

import (
	"context"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mealai/nutritionix-mcp/config"
	"github.com/mealai/nutritionix-mcp/internal/database"
	"github.com/mealai/nutritionix-mcp/internal/nutritionix"
	"github.com/mealai/nutritionix-mcp/internal/service"
	"github.com/mealai/nutritionix-mcp/internal/tools"
)

const (
	serverName    = "nutritionix-mcp"
	serverVersion = "0.1.0"
)

// Server is the assembled MCP server and its process-wide resources.
type Server struct {
	mcp    *mcpserver.MCPServer
	db     *gorm.DB
	logger zerolog.Logger
}

// New connects the database, builds the upstream client, and registers the
// tools. The database must be reachable; missing Nutritionix credentials
// only produce a warning, the upstream tools fail per-call instead.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("database connection established")

	if !cfg.HasNutritionixCredentials() {
		logger.Warn().Msg("Nutritionix credentials not found; set NIX_APP_ID and NIX_APP_KEY environment variables")
	} else {
		logger.Info().Msg("Nutritionix credentials configured")
	}

	mcpSrv := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithInstructions("Search foods, fetch nutrition facts, log meals, and analyze daily nutrition against user goals."),
	)

	tools.Register(mcpSrv, tools.Dependencies{
		Meals:       service.NewMealService(db),
		Nutritionix: nutritionix.New(cfg.NixBaseURL, cfg.NixAppID, cfg.NixAppKey),
		Logger:      logger,
	})

	return &Server{mcp: mcpSrv, db: db, logger: logger}, nil
}

// Start serves MCP over stdio until the context is cancelled or stdin
// closes. Stdout carries the protocol; all logging goes to stderr.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().Str("server", serverName).Str("version", serverVersion).Msg("serving MCP over stdio")
	return mcpserver.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// Shutdown releases the database pool.
func (s *Server) Shutdown() error {
	s.logger.Info().Msg("closing database connection")
	return database.Close(s.db)
}
