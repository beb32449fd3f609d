package assess

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Assessment is the structured cancer-risk read of a single mammogram,
// extracted from the model's free-text response. Numeric fields are always
// populated (parsing falls back to conservative defaults); the free-text
// fields may be empty when the model ignored the requested format.
type Assessment struct {
	// CancerProbability is the model's risk estimate in percent (0-100).
	CancerProbability int `json:"cancer_probability"`

	// BIRADSCategory is the standardized 1-6 malignancy-likelihood class.
	BIRADSCategory int `json:"bi_rads_category"`

	// RiskLevel is LOW, MODERATE or HIGH, derived from CancerProbability.
	RiskLevel string `json:"risk_level"`

	// UrgencyLevel is ROUTINE, URGENT or IMMEDIATE, derived from
	// CancerProbability.
	UrgencyLevel string `json:"urgency_level"`

	PrimaryFindings         string `json:"primary_findings,omitempty"`
	MassDetected            string `json:"mass_detected,omitempty"`
	Calcifications          string `json:"calcifications_detected,omitempty"`
	ArchitecturalDistortion string `json:"architectural_distortion,omitempty"`
	AsymmetryPresent        string `json:"asymmetry_present,omitempty"`
	ClinicalRecommendations string `json:"clinical_recommendations,omitempty"`
	AdditionalNotes         string `json:"additional_notes,omitempty"`

	// Model is the generative model that produced the response.
	Model string `json:"model,omitempty"`

	// RawResponse is the unparsed model output, kept for audit.
	RawResponse string `json:"raw_response,omitempty"`
}

// Analyzer produces a structured risk assessment for an encoded image.
// Implementations wrap an external generative model; the rest of the
// pipeline depends only on this interface so tests can substitute a stub.
type Analyzer interface {
	Analyze(ctx context.Context, imageData []byte, format string) (*Assessment, error)
}

// GeminiAnalyzer asks Google Gemini for a mammography risk read.
type GeminiAnalyzer struct {
	apiKey      string
	model       string
	temperature float32
}

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// NewGeminiAnalyzer creates an analyzer. An empty model selects DefaultModel.
func NewGeminiAnalyzer(apiKey, model string) *GeminiAnalyzer {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiAnalyzer{apiKey: apiKey, model: model, temperature: 0.2}
}

// Analyze sends the image and the radiologist prompt to Gemini and parses
// the response. format is the image format name as understood by the API
// ("jpeg", "png").
//
// API and transport failures are returned as errors; a response that merely
// deviates from the requested structure is not an error, ParseResponse
// extracts what it can and defaults the rest.
func (g *GeminiAnalyzer) Analyze(ctx context.Context, imageData []byte, format string) (*Assessment, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)

	resp, err := model.GenerateContent(ctx,
		genai.Text(riskAnalysisPrompt),
		genai.ImageData(format, imageData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	assessment := ParseResponse(text)
	assessment.Model = g.model
	return assessment, nil
}

// responseText flattens the first candidate's text parts.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from gemini")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("unexpected response format from gemini")
	}
	return sb.String(), nil
}
