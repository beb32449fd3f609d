package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema fragment shared by every tool that takes an
// image path.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. Caches the decoded image for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. Use this to zoom into areas that need detailed examination.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "image_crop_quadrant",
			Description: "Crop a named region of the image (top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named region to extract",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "region"},
			},
		},

		// Screening Pipeline
		{
			Name:        "mammo_validate",
			Description: "Run heuristic validation to decide whether an image looks like a mammogram. Returns the five feature scores, the combined confidence and the accept/reject verdict with any quality warnings.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "mammo_assess",
			Description: "Send a validated mammogram to the external model for a cancer-risk assessment. When validation rejects the image, assessment is skipped and the verdict is returned with an explanation unless force is set. Returns the validation result plus the structured assessment (probability, BI-RADS category, risk and urgency levels, findings).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"force": map[string]interface{}{
						"type":        "boolean",
						"description": "Assess even when validation rejects the image. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "report_render",
			Description: "Run the full pipeline (validate, assess, render) and return the clinical report documents: executive summary, detailed report, clinical summary, BI-RADS report and recommendations. Pass a stored assessment object instead of a path to re-render the reports without touching the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"force": map[string]interface{}{
						"type":        "boolean",
						"description": "Assess even when validation rejects the image. Default false",
						"default":     false,
					},
					"assessment": map[string]interface{}{
						"type":        "object",
						"description": "Stored assessment from an earlier mammo_assess call. When set, path is ignored and the reports are re-rendered from it",
					},
				},
			},
		},

		// Annotations
		{
			Name:        "annotations_extract",
			Description: "OCR the burned-in text annotations on a mammogram and parse the standard view markers (RCC, LMLO, ...). Requires a build with Tesseract support.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default from configuration (eng)",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
