package generation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neweraservicez/startup-os/internal/app/generation"
	"github.com/neweraservicez/startup-os/internal/domain"
)

type recordingLLM struct {
	last  domain.Completion
	reply string
	err   error
}

func (r *recordingLLM) Generate(_ context.Context, req domain.Completion) (string, error) {
	r.last = req
	return r.reply, r.err
}

func TestBuildLayerPrompt(t *testing.T) {
	p := generation.BuildLayerPrompt(domain.LayerIdentity, "eco coffee pods", "Brewly")
	assert.Contains(t, p, "Generate startup identity content for Brewly")
	assert.Contains(t, p, "User context: eco coffee pods")

	p = generation.BuildLayerPrompt(domain.LayerProduct, "x", "")
	assert.Contains(t, p, "for a startup")

	for _, id := range domain.LayerOrder {
		assert.NotEqual(t, "raw", generation.BuildLayerPrompt(id, "raw", "Co"), id)
	}

	assert.Equal(t, "just my words", generation.BuildLayerPrompt("marketing", "just my words", "Co"))
}

func TestGenerateLayerContent_Structured(t *testing.T) {
	llm := &recordingLLM{reply: `{"worldview":"w","values":["a","b"]}`}
	svc := generation.NewService(llm)

	content, err := svc.GenerateLayerContent(context.Background(), generation.LayerContentInput{
		UserID: "u1", LayerID: domain.LayerIdentity, Prompt: "p", CompanyName: "Co",
	})
	require.NoError(t, err)
	assert.False(t, content.IsRaw())
	assert.Equal(t, map[string]any{"worldview": "w", "values": []any{"a", "b"}}, content.Value())

	assert.Contains(t, llm.last.System, "valid JSON only")
	assert.InDelta(t, 0.7, llm.last.Temperature, 1e-6)
	assert.Positive(t, llm.last.MaxTokens)
}

func TestGenerateLayerContent_RawFallback(t *testing.T) {
	svc := generation.NewService(&recordingLLM{reply: "Sure! Here is your content: ..."})

	content, err := svc.GenerateLayerContent(context.Background(), generation.LayerContentInput{
		UserID: "u1", LayerID: domain.LayerSystems, Prompt: "p",
	})
	require.NoError(t, err)
	assert.True(t, content.IsRaw())
	assert.Equal(t, map[string]any{"raw_content": "Sure! Here is your content: ..."}, content.JSONValue())
}

func TestGenerateLayerContent_Failure(t *testing.T) {
	svc := generation.NewService(&recordingLLM{err: errors.New("429 Too Many Requests")})

	_, err := svc.GenerateLayerContent(context.Background(), generation.LayerContentInput{
		UserID: "u1", LayerID: domain.LayerFinancial, Prompt: "p",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Equal(t, "429 Too Many Requests", err.Error())
}
