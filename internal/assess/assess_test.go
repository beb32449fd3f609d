package assess

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestNewGeminiAnalyzer_DefaultModel(t *testing.T) {
	a := NewGeminiAnalyzer("key", "")
	if a.model != DefaultModel {
		t.Errorf("model: got %s, want %s", a.model, DefaultModel)
	}

	b := NewGeminiAnalyzer("key", "gemini-1.5-pro")
	if b.model != "gemini-1.5-pro" {
		t.Errorf("model: got %s, want gemini-1.5-pro", b.model)
	}
}

func TestAnalyze_MissingAPIKey(t *testing.T) {
	a := NewGeminiAnalyzer("", "")
	if _, err := a.Analyze(context.Background(), []byte{1, 2, 3}, "png"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestResponseText(t *testing.T) {
	t.Run("concatenates text parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("first "), genai.Text("second")},
				},
			}},
		}
		text, err := responseText(resp)
		if err != nil {
			t.Fatalf("responseText failed: %v", err)
		}
		if text != "first second" {
			t.Errorf("got %q", text)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		if _, err := responseText(&genai.GenerateContentResponse{}); err == nil {
			t.Error("expected error for empty response")
		}
	})

	t.Run("empty content", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
		}
		if _, err := responseText(resp); err == nil {
			t.Error("expected error for empty content")
		}
	})
}
