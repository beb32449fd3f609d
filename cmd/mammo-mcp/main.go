package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/mammo-screen-mcp/internal/config"
	"github.com/ironsheep/mammo-screen-mcp/internal/server"
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
			fmt.Printf("mammo-screen-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("mammo-screen-mcp - MCP server for mammography screening analysis")
			fmt.Println()
			fmt.Println("Usage: mammo-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  GEMINI_API_KEY               API key for risk assessment")
			fmt.Println("  GEMINI_MODEL                 Override the assessment model")
			fmt.Println("  MAMMO_OCR_LANGUAGE           Tesseract language code (default eng)")
			fmt.Println("  MAMMO_VERDICT_THRESHOLD      Override the validation threshold")
			fmt.Println("  MAMMO_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Load()

	if os.Getenv("MAMMO_MCP_LOG_LEVEL") == "debug" {
		log.Printf("Mammo Screen MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		if cfg.GeminiAPIKey == "" {
			log.Printf("GEMINI_API_KEY not set; mammo_assess and report_render will be unavailable")
		}
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
