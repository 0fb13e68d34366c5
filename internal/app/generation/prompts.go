package generation

import (
	"fmt"

	"github.com/neweraservicez/startup-os/internal/domain"
)

const contentSystemPrompt = "You are a startup strategy expert. Generate practical, actionable content. " +
	"Always respond with valid JSON only, no markdown or explanation."

// Layer templates take the company name (%[1]s) and the user's free text (%[2]s).
const identityTemplate = `Generate startup identity content for %[1]s:
- Worldview: A unique perspective on the market (2-3 sentences)
- Category POV: How this startup sees its category differently (2-3 sentences)
- Brand Archetype: The personality type (e.g., The Innovator, The Sage, etc.)
- Core Message: A powerful tagline or positioning statement
- Values: 3-5 core values

User context: %[2]s

Return as JSON with keys: worldview, category_pov, brand_archetype, core_message, values (array)`

const productTemplate = `Generate product strategy content for %[1]s:
- Main Offer: The core product/service description
- Pricing Strategy: Recommended pricing approach
- 10x Feature: The one feature that makes this 10x better than alternatives
- Signature Experience: What makes the customer experience unique

User context: %[2]s

Return as JSON with keys: main_offer, pricing_strategy, ten_x_feature, signature_experience`

const audienceTemplate = `Generate audience growth strategy for %[1]s:
- Target Audience: Detailed description of ideal customer
- Distribution Channels: Top 3 channels to reach them
- Content Strategy: Content pillars and approach
- Growth Engine: The primary growth mechanism

User context: %[2]s

Return as JSON with keys: target_audience, distribution_channels (array), content_strategy, growth_engine`

const systemsTemplate = `Generate operational systems for %[1]s:
- CRM Approach: How to manage customer relationships
- Automation Priorities: Top 3 processes to automate
- Key Workflows: Essential business workflows
- Tech Stack Recommendations: Core tools needed

User context: %[2]s

Return as JSON with keys: crm_approach, automation_priorities (array), key_workflows (array), tech_stack (array)`

const financialTemplate = `Generate financial strategy for %[1]s:
- Revenue Model: How the business makes money
- Pricing Tiers: Recommended tier structure
- Key Metrics: Top 5 metrics to track
- Financial Projections: High-level growth scenarios

User context: %[2]s

Return as JSON with keys: revenue_model, pricing_tiers (array of objects with name and price), key_metrics (array), financial_projections`

const expansionTemplate = `Generate expansion strategy for %[1]s:
- Partnership Opportunities: Types of strategic partners
- Ecosystem Vision: How to build an ecosystem
- Scale Map: Phases of scaling
- Category Leadership: How to become the category leader

User context: %[2]s

Return as JSON with keys: partnership_opportunities (array), ecosystem_vision, scale_map (array), category_leadership`

var layerTemplates = map[domain.LayerID]string{
	domain.LayerIdentity:  identityTemplate,
	domain.LayerProduct:   productTemplate,
	domain.LayerAudience:  audienceTemplate,
	domain.LayerSystems:   systemsTemplate,
	domain.LayerFinancial: financialTemplate,
	domain.LayerExpansion: expansionTemplate,
}

// BuildLayerPrompt fills the layer's template. Unknown layers use the raw
// prompt as is.
func BuildLayerPrompt(layerID domain.LayerID, prompt, companyName string) string {
	tmpl, ok := layerTemplates[layerID]
	if !ok {
		return prompt
	}
	if companyName == "" {
		companyName = "a startup"
	}
	return fmt.Sprintf(tmpl, companyName, prompt)
}
