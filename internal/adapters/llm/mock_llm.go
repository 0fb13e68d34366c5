package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/neweraservicez/startup-os/internal/domain"
)

// MockLLM answers without calling any service. Requests whose system prompt
// asks for JSON get a small JSON object back.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Generate(_ context.Context, req domain.Completion) (string, error) {
	if strings.Contains(req.System, "valid JSON") {
		b, err := json.Marshal(map[string]any{
			"summary": "Draft generated offline. Configure LLM_PROVIDER for real content.",
			"prompt":  firstLine(req.Prompt),
		})
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return "Here is a first step: write down the one customer problem you solve better than anyone else, then test it with five real customers this week.", nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
