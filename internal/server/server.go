package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/mammo-screen-mcp/internal/assess"
	"github.com/ironsheep/mammo-screen-mcp/internal/config"
	"github.com/ironsheep/mammo-screen-mcp/internal/heuristics"
	"github.com/ironsheep/mammo-screen-mcp/internal/imaging"
	"github.com/ironsheep/mammo-screen-mcp/internal/report"
)

// Server handles MCP protocol communication and owns the analysis pipeline.
type Server struct {
	cache    *imaging.ImageCache
	scorer   *heuristics.Scorer
	analyzer assess.Analyzer
	renderer *report.Renderer
	cfg      *config.Config
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server from configuration. The heuristic scorer threshold
// can be overridden via MAMMO_VERDICT_THRESHOLD; everything else uses
// defaults.
func New(cfg *config.Config) *Server {
	hcfg := heuristics.DefaultConfig()
	if cfg.VerdictThreshold > 0 {
		hcfg.VerdictThreshold = cfg.VerdictThreshold
	}
	return &Server{
		cache:    imaging.NewImageCache(),
		scorer:   heuristics.NewScorer(hcfg),
		analyzer: assess.NewGeminiAnalyzer(cfg.GeminiAPIKey, cfg.GeminiModel),
		renderer: report.NewRenderer(),
		cfg:      cfg,
	}
}

// NewWithAnalyzer creates a server with a caller-supplied analyzer. Used by
// tests to avoid the external model.
func NewWithAnalyzer(cfg *config.Config, analyzer assess.Analyzer) *Server {
	s := New(cfg)
	s.analyzer = analyzer
	return s
}

// Run starts the MCP server, reading from stdin and writing to stdout.
// Diagnostics go to stderr via the log package; stdout carries only
// protocol frames.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(os.Stdin)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "mammo-screen-mcp",
				"version": "0.1.0",
			},
		},
	}
}
