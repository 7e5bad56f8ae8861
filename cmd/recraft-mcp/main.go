package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"recraft-mcp/internal/config"
	"recraft-mcp/internal/recraft"
	"recraft-mcp/internal/saver"
	"recraft-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("recraft-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("recraft-mcp - MCP server for the Recraft image API")
			fmt.Println()
			fmt.Println("Usage: recraft-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  RECRAFT_API_KEY              Recraft API key (required)")
			fmt.Println("  RECRAFT_API_URL              API base URL (default " + config.DefaultBaseURL + ")")
			fmt.Println("  RECRAFT_MCP_LOG_LEVEL=debug  Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Logs go to stderr; stdout carries the MCP protocol.
	log, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	log.Debug("starting recraft-mcp",
		zap.String("version", Version),
		zap.String("base_url", cfg.BaseURL))

	srv := server.New(recraft.NewClient(cfg), saver.New(), log)
	if err := srv.Run(); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if os.Getenv("RECRAFT_MCP_LOG_LEVEL") == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
