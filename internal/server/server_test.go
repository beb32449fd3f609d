package server

import (
	"encoding/json"
	"testing"

	"github.com/ironsheep/mammo-screen-mcp/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		GeminiModel: "test-model",
		OCRLanguage: "eng",
	}
}

func TestNew(t *testing.T) {
	s := New(testConfig())
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cache == nil || s.scorer == nil || s.analyzer == nil || s.renderer == nil {
		t.Fatal("New() left pipeline components uninitialized")
	}
}

func TestNew_ThresholdOverride(t *testing.T) {
	cfg := testConfig()
	cfg.VerdictThreshold = 0.85
	s := New(cfg)
	if s.cfg.VerdictThreshold != 0.85 {
		t.Errorf("threshold override lost: %v", s.cfg.VerdictThreshold)
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := New(testConfig())
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})

	if resp == nil {
		t.Fatal("initialize returned nil response")
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type: %T", resp.Result)
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	info, ok := result["serverInfo"].(map[string]interface{})
	if !ok || info["name"] != "mammo-screen-mcp" {
		t.Errorf("serverInfo: got %v", result["serverInfo"])
	}
}

func TestHandleRequest_InitializedNotification(t *testing.T) {
	s := New(testConfig())
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})
	if resp != nil {
		t.Errorf("notification should produce no response, got %+v", resp)
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := New(testConfig())
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: "ping"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("ping failed: %+v", resp)
	}
	if resp.ID != 7 {
		t.Errorf("ID: got %v, want 7", resp.ID)
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	s := New(testConfig())
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "resources/list"})
	if resp == nil || resp.Error == nil {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("error code: got %d, want -32601", resp.Error.Code)
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(testConfig())
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list failed: %+v", resp)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type: %T", resp.Result)
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools type: %T", result["tools"])
	}

	want := map[string]bool{
		"image_load":          false,
		"image_dimensions":    false,
		"image_crop":          false,
		"image_crop_quadrant": false,
		"mammo_validate":      false,
		"mammo_assess":        false,
		"report_render":       false,
		"annotations_extract": false,
	}
	for _, tool := range tools {
		if _, known := want[tool.Name]; known {
			want[tool.Name] = true
		}
		if tool.Description == "" {
			t.Errorf("tool %s has no description", tool.Name)
		}
		if tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", tool.Name)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("tool %s not listed", name)
		}
	}
}

func TestToolDefinitions_SchemasValidJSON(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if _, err := json.Marshal(tool); err != nil {
			t.Errorf("tool %s schema does not marshal: %v", tool.Name, err)
		}
	}
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			if err := json.Unmarshal([]byte(tt.json), &req); err != nil {
				t.Fatalf("Failed to unmarshal: %v", err)
			}
			if req.ID != tt.wantID {
				t.Errorf("ID: got %v (%T), want %v (%T)", req.ID, req.ID, tt.wantID, tt.wantID)
			}
			if req.Method != tt.wantMethod {
				t.Errorf("Method: got %s, want %s", req.Method, tt.wantMethod)
			}
		})
	}
}

func TestMCPResponse_ErrorMarshal(t *testing.T) {
	resp := MCPResponse{
		JSONRPC: "2.0",
		ID:      1,
		Error: &MCPError{
			Code:    -32601,
			Message: "Method not found",
		},
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if _, hasResult := decoded["result"]; hasResult {
		t.Error("error response should omit result")
	}
	if _, hasError := decoded["error"]; !hasError {
		t.Error("error response missing error field")
	}
}
