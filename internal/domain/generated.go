package domain

import "encoding/json"

// GeneratedContent is the outcome of a single parse attempt over model
// output: either a structured JSON value or the raw text.
type GeneratedContent struct {
	structured any
	raw        string
	isRaw      bool
}

// Structured wraps an already-decoded JSON value.
func Structured(v any) GeneratedContent {
	return GeneratedContent{structured: v}
}

// RawText wraps model output that was not valid JSON.
func RawText(text string) GeneratedContent {
	return GeneratedContent{raw: text, isRaw: true}
}

// ParseGenerated tries once to decode text as JSON.
func ParseGenerated(text string) GeneratedContent {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return RawText(text)
	}
	return Structured(v)
}

func (g GeneratedContent) IsRaw() bool { return g.isRaw }

func (g GeneratedContent) Raw() string { return g.raw }

func (g GeneratedContent) Value() any { return g.structured }

// JSONValue is what gets sent to clients; raw text becomes {"raw_content": text}.
func (g GeneratedContent) JSONValue() any {
	if g.isRaw {
		return map[string]any{"raw_content": g.raw}
	}
	return g.structured
}

func (g GeneratedContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.JSONValue())
}
