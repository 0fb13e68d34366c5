// Package generation produces layer content through the text-generation service.
package generation

import (
	"context"

	"github.com/neweraservicez/startup-os/internal/domain"
	"github.com/neweraservicez/startup-os/internal/observability"
)

const (
	contentTemperature = 0.7
	contentMaxTokens   = 1500
)

type Service struct {
	llm domain.LLMClient
}

func NewService(llm domain.LLMClient) *Service {
	return &Service{llm: llm}
}

type LayerContentInput struct {
	UserID      domain.UserID
	LayerID     domain.LayerID
	Prompt      string
	CompanyName string
}

// GenerateLayerContent asks the model for one layer's content. Nothing is
// persisted; clients save the result through the layer update call.
func (s *Service) GenerateLayerContent(ctx context.Context, in LayerContentInput) (domain.GeneratedContent, error) {
	log := observability.LoggerFromContext(ctx).With(
		"user_id", in.UserID,
		"layer_id", in.LayerID,
	)

	text, err := s.llm.Generate(ctx, domain.Completion{
		System:      contentSystemPrompt,
		Prompt:      BuildLayerPrompt(in.LayerID, in.Prompt, in.CompanyName),
		Temperature: contentTemperature,
		MaxTokens:   contentMaxTokens,
	})
	if err != nil {
		log.Error("AI generation error", "error", err)
		return domain.GeneratedContent{}, &domain.GenerationError{Err: err}
	}

	content := domain.ParseGenerated(text)
	log.Info("layer content generated", "raw", content.IsRaw())
	return content, nil
}
