package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/mammo-screen-mcp/internal/assess"
	"github.com/ironsheep/mammo-screen-mcp/internal/heuristics"
	"github.com/ironsheep/mammo-screen-mcp/internal/imaging"
	"github.com/ironsheep/mammo-screen-mcp/internal/ocr"
	"github.com/ironsheep/mammo-screen-mcp/internal/report"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "mammo_validate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_crop_quadrant":
		return s.handleImageCropQuadrant(args)

	// Screening Pipeline
	case "mammo_validate":
		return s.handleMammoValidate(args)
	case "mammo_assess":
		return s.handleMammoAssess(args)
	case "report_render":
		return s.handleReportRender(args)

	// Annotations
	case "annotations_extract":
		return s.handleAnnotationsExtract(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Region Operation Handlers ===

type imageCropArgs struct {
	Path  string  `json:"path"`
	X1    int     `json:"x1"`
	Y1    int     `json:"y1"`
	X2    int     `json:"x2"`
	Y2    int     `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

type imageCropQuadrantArgs struct {
	Path   string  `json:"path"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleImageCropQuadrant(args json.RawMessage) (interface{}, error) {
	var a imageCropQuadrantArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CropQuadrant(img, a.Region, a.Scale)
}

// === Screening Pipeline Handlers ===

type mammoValidateArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleMammoValidate(args json.RawMessage) (interface{}, error) {
	var a mammoValidateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.scorer.Score(img), nil
}

type mammoAssessArgs struct {
	Path string `json:"path"`

	// Force skips the validation gate: the image is sent for assessment
	// even when the heuristics reject it as a non-mammogram.
	Force bool `json:"force"`
}

// AssessResult pairs the heuristic validation with the model assessment.
// When validation rejects the image and force is not set, Assessment is nil
// and Skipped explains why no assessment was run.
type AssessResult struct {
	Validation *heuristics.Result `json:"validation"`
	Assessment *assess.Assessment `json:"assessment,omitempty"`
	Skipped    string             `json:"skipped,omitempty"`
}

func (s *Server) handleMammoAssess(args json.RawMessage) (interface{}, error) {
	var a mammoAssessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.runAssessment(a.Path, a.Force)
}

// runAssessment validates the image, then sends it to the external model.
// Validation failure skips the assessment unless force is set: the caller
// still gets the verdict, with Skipped set, rather than a tool error.
func (s *Server) runAssessment(path string, force bool) (*AssessResult, error) {
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}

	validation := s.scorer.Score(img)
	if !validation.Verdict.IsMammogram && !force {
		return &AssessResult{
			Validation: validation,
			Skipped: fmt.Sprintf("image does not appear to be a mammogram (confidence %.2f); set force to assess anyway",
				validation.Verdict.Confidence),
		}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	assessment, err := s.analyzer.Analyze(context.Background(), data, imageFormat(path))
	if err != nil {
		return nil, err
	}

	return &AssessResult{Validation: validation, Assessment: assessment}, nil
}

type reportRenderArgs struct {
	Path  string `json:"path"`
	Force bool   `json:"force"`

	// Assessment re-renders the report documents from a stored assessment
	// object produced by an earlier mammo_assess call. When set, the image
	// pipeline (and path) is skipped entirely.
	Assessment json.RawMessage `json:"assessment"`
}

// ReportResult is the full pipeline output: validation, assessment and the
// rendered report documents. Validation is absent when rendering from a
// stored assessment; Report is absent when validation skipped the pipeline.
type ReportResult struct {
	Validation *heuristics.Result `json:"validation,omitempty"`
	Assessment *assess.Assessment `json:"assessment,omitempty"`
	Report     *report.Report     `json:"report,omitempty"`
	Skipped    string             `json:"skipped,omitempty"`
}

func (s *Server) handleReportRender(args json.RawMessage) (interface{}, error) {
	var a reportRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	if len(a.Assessment) > 0 && string(a.Assessment) != "null" {
		var stored assess.Assessment
		if err := json.Unmarshal(a.Assessment, &stored); err != nil {
			return nil, fmt.Errorf("invalid stored assessment: %w", err)
		}
		return &ReportResult{
			Assessment: &stored,
			Report:     s.renderer.Generate(&stored, nil),
		}, nil
	}

	assessed, err := s.runAssessment(a.Path, a.Force)
	if err != nil {
		return nil, err
	}
	if assessed.Assessment == nil {
		return &ReportResult{Validation: assessed.Validation, Skipped: assessed.Skipped}, nil
	}

	rep := s.renderer.Generate(assessed.Assessment, &assessed.Validation.Verdict)
	return &ReportResult{
		Validation: assessed.Validation,
		Assessment: assessed.Assessment,
		Report:     rep,
	}, nil
}

// === Annotation Handlers ===

type annotationsExtractArgs struct {
	Path     string `json:"path"`
	Language string `json:"language"`
}

func (s *Server) handleAnnotationsExtract(args json.RawMessage) (interface{}, error) {
	var a annotationsExtractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.cfg.OCRLanguage
	}
	if !ocr.Available() {
		return nil, fmt.Errorf("annotation extraction is unavailable: this build has no OCR support")
	}

	// Validate the file before handing the path to tesseract.
	if _, err := s.cache.Load(a.Path); err != nil {
		return nil, err
	}
	return ocr.ExtractAnnotations(a.Path, a.Language)
}

// imageFormat maps a file extension to the format name the assessment API
// expects.
func imageFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	default:
		return "png"
	}
}
