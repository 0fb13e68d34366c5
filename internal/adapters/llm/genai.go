package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/neweraservicez/startup-os/internal/domain"
)

// GenAIConfig selects either the Gemini API (APIKey) or Vertex AI
// (Project + Location).
type GenAIConfig struct {
	APIKey   string
	Project  string
	Location string
	Model    string
	Vertex   bool
}

type GenAIClient struct {
	client    *genai.Client
	modelName string
}

// NewGenAIClient creates an LLMClient backed by Gemini.
func NewGenAIClient(ctx context.Context, cfg GenAIConfig) (*GenAIClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Vertex {
		if cfg.Project == "" || cfg.Location == "" {
			return nil, fmt.Errorf("project and location are required for Vertex AI")
		}
		cc = &genai.ClientConfig{
			Project:  cfg.Project,
			Location: cfg.Location,
			Backend:  genai.BackendVertexAI,
		}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GenAIClient{
		client:    client,
		modelName: cfg.Model,
	}, nil
}

// Generate implements domain.LLMClient with a single GenerateContent call.
func (g *GenAIClient) Generate(ctx context.Context, req domain.Completion) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	temp := req.Temperature
	cfg := &genai.GenerateContentConfig{
		// According to official examples, the role here is usually RoleUser, not "system"
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       &temp,
		MaxOutputTokens:   int32(req.MaxTokens),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("genai generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("genai returned empty text")
	}
	return text, nil
}
