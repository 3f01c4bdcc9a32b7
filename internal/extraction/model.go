// Package extraction finds skill mentions in resume text using a hybrid of
// model-based entity extraction and rule-based lexicon matching.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/resume-fit-analyzer/internal/types"
)

// modelConfidenceFloor filters low-confidence model hits. Every surviving
// model mention has confidence at or above this floor, which keeps the fixed
// rule-pass confidence strictly below any model hit.
const modelConfidenceFloor = 0.6

// ModelExtractor is the model-based extraction pass. Implementations return
// candidate skill mentions with per-mention confidence.
type ModelExtractor interface {
	ExtractSkills(ctx context.Context, text string) ([]types.ExtractedMention, error)
}

// GeminiExtractor extracts skill entities with a Gemini model prompted for
// strict JSON output.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates a model extractor backed by the Gemini API.
func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

// extractionPrompt builds the skill-extraction prompt for a resume text.
func extractionPrompt(text string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert resume parser. Identify every technical skill, tool, framework, platform, or methodology mentioned in the text.\n\n")
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"skills\": [\n")
	sb.WriteString("    {\"name\": string, \"confidence\": number} // surface form as written, confidence in [0,1]\n")
	sb.WriteString("  ]\n")
	sb.WriteString("}\n\n")
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Copy each skill name verbatim from the text, do not normalize or expand abbreviations.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(text)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

type extractionResponse struct {
	Skills []struct {
		Name       string  `json:"name"`
		Confidence float64 `json:"confidence"`
	} `json:"skills"`
}

// ExtractSkills runs the model pass over the text. Hits below the confidence
// floor are dropped; duplicates are collapsed case-insensitively keeping the
// highest confidence.
func (g *GeminiExtractor) ExtractSkills(ctx context.Context, text string) ([]types.ExtractedMention, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(extractionPrompt(text)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	raw, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	var parsed extractionResponse
	if err := json.Unmarshal([]byte(cleanJSONBlock(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse extraction JSON: %w", err)
	}

	best := make(map[string]types.ExtractedMention)
	order := make([]string, 0, len(parsed.Skills))
	for _, s := range parsed.Skills {
		name := strings.TrimSpace(s.Name)
		if len(name) < 2 {
			continue
		}
		conf := s.Confidence
		if conf > 1 {
			conf = 1
		}
		if conf < modelConfidenceFloor {
			continue
		}
		key := strings.ToLower(name)
		if cur, seen := best[key]; seen {
			if conf > cur.Confidence {
				cur.Confidence = conf
				best[key] = cur
			}
			continue
		}
		best[key] = types.ExtractedMention{Text: name, Source: types.SourceModel, Confidence: conf}
		order = append(order, key)
	}

	mentions := make([]types.ExtractedMention, 0, len(order))
	for _, key := range order {
		mentions = append(mentions, best[key])
	}
	return mentions, nil
}

// Close releases the underlying API client.
func (g *GeminiExtractor) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// extractTextFromResponse concatenates the text parts of a Gemini response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in model response")
	}
	return sb.String(), nil
}

// cleanJSONBlock strips markdown code fences some models wrap JSON in.
func cleanJSONBlock(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
