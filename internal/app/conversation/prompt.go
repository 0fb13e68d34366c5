package conversation

import (
	"strings"

	"github.com/neweraservicez/startup-os/internal/domain"
)

const mentorSystemPrompt = `You are an expert startup mentor and advisor for New Era Servicez - a Startup Operating System.
You help founders with:
- Strategy and positioning
- Product development
- Growth and marketing
- Operations and systems
- Fundraising and finance
- Scaling and expansion

Be concise, practical, and actionable. Draw from best practices of successful startups.
If relevant context about their business is provided, reference it in your advice.`

// Transcript renders messages as "role: content" lines.
func Transcript(history []*domain.ChatMessage) string {
	parts := make([]string, 0, len(history))
	for _, m := range history {
		parts = append(parts, string(m.Role)+": "+m.Content)
	}
	return strings.Join(parts, "\n")
}

// BuildMentorPrompt builds the user content sent to the model: prior turns,
// the current question and the optional business context.
func BuildMentorPrompt(history []*domain.ChatMessage, message, businessContext string) string {
	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	b.WriteString(Transcript(history))
	b.WriteString("\n\nUser's current question: ")
	b.WriteString(message)
	b.WriteString("\n\n")
	if businessContext != "" {
		b.WriteString("Business context: ")
		b.WriteString(businessContext)
	}
	return b.String()
}
