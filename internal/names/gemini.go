package names

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// DefaultGeminiURL is the Generative Language API endpoint
const DefaultGeminiURL = "https://generativelanguage.googleapis.com"

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig map[string]any  `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Gemini asks the Gemini API for names as structured JSON
type Gemini struct {
	client *resty.Client
	model  string
}

// NewGemini creates a client against the public endpoint
func NewGemini(apiKey, model string) *Gemini {
	return NewGeminiWithURL(DefaultGeminiURL, apiKey, model)
}

// NewGeminiWithURL creates a client against baseURL
func NewGeminiWithURL(baseURL, apiKey, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second). // Generation can be slow
		SetHeader("x-goog-api-key", apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Gemini{client: client, model: model}
}

// Suggest returns the generated names, or an empty list on any error
func (g *Gemini) Suggest(ctx context.Context, count int) []string {
	if count <= 0 {
		return []string{}
	}
	names, err := g.generate(ctx, count)
	if err != nil {
		logrus.WithFields(logrus.Fields{"model": g.model, "error": err.Error()}).Error("Gemini name generation failed")
		return []string{}
	}
	logrus.WithField("count", len(names)).Info("Generated names")
	return names
}

func (g *Gemini) generate(ctx context.Context, count int) ([]string, error) {
	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{
			Text: fmt.Sprintf("Generate a list of %d realistic Thai full names (Firstname Lastname) suitable for government officials. Do not include titles like Mr. or Mrs.", count),
		}}}},
		GenerationConfig: map[string]any{
			"responseMimeType": "application/json",
			"responseSchema": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"names": map[string]any{
						"type":        "ARRAY",
						"items":       map[string]any{"type": "STRING"},
						"description": "List of Thai names",
					},
				},
			},
		},
	}

	var out geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/v1beta/models/" + g.model + ":generateContent")
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("gemini API error: %s", resp.Status())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return []string{}, nil
	}

	text := out.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return []string{}, nil
	}
	var parsed struct {
		Names []string `json:"names"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal names: %w", err)
	}
	return clean(parsed.Names), nil
}
