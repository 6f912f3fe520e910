package generator

import (
	"context"
	"fmt"
	"strings"

	"flowcraft/internal/domain"
)

// GenerateFlow asks the model for a complete app flow and decodes the
// screen-list JSON. Positions in the response are ignored by callers;
// the canvas lays screens out itself.
func (c *Client) GenerateFlow(ctx context.Context, req domain.FlowRequest) (*domain.Flow, error) {
	prompt := fmt.Sprintf(`You are an expert app designer. Create a complete app flow for this idea:
APP IDEA: %s
TYPE: %s
STYLE: %s

Generate a JSON response with this structure:
{
  "appName": "Creative app name",
  "description": "Brief app description",
  "screens": [
    {
      "id": "screen_1",
      "name": "Screen name",
      "type": "onboarding/main/detail/etc",
      "description": "What this screen does",
      "elements": ["Button", "Header", "Card", "etc"],
      "position": { "x": 0, "y": 0 }
    }
  ]
}
Create %d key screens. Calculate logical x/y positions.`, req.Idea, req.Platform, req.Style, req.ScreenCount)

	raw, err := c.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate flow: %w", err)
	}

	var flow domain.Flow
	if err := ExtractJSON(raw, &flow); err != nil {
		return nil, fmt.Errorf("generate flow: %w", err)
	}
	if len(flow.Screens) == 0 {
		return nil, fmt.Errorf("generate flow: model returned no screens")
	}
	return &flow, nil
}

// GenerateScreenHTML asks the model for one screen's markup and
// extracts the first well-formed fragment.
func (c *Client) GenerateScreenHTML(ctx context.Context, req domain.FlowRequest, screen domain.Screen) (string, error) {
	prompt := fmt.Sprintf(`Create a beautiful %s screen UI with %s design.
SCREEN: %s
DESCRIPTION: %s
ELEMENTS: %s

IMPORTANT INSTRUCTIONS:
1. Generate ONLY valid HTML code with Tailwind CSS classes.
2. Do NOT include any conversational text, explanations, or markdown formatting.
3. The output must be a single HTML string starting with <div and ending with </div>.
4. Make it modern, professional, and visually stunning.`,
		req.Platform, req.Style, screen.Name, screen.Description, strings.Join(screen.Elements, ", "))

	raw, err := c.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate screen %q: %w", screen.Name, err)
	}
	html, err := ExtractHTMLFragment(raw)
	if err != nil {
		return "", fmt.Errorf("generate screen %q: %w", screen.Name, err)
	}
	return html, nil
}

// MagicEdit asks the model to rewrite one element's markup per the
// user's request, keeping the flow's design language.
func (c *Client) MagicEdit(ctx context.Context, style, originalHTML, request string) (string, error) {
	prompt := fmt.Sprintf(`You are an expert Tailwind CSS developer. Edit this specific HTML element based on the user's request, maintaining the existing design language and Tailwind classes unless explicitly asked to change them.

CONTEXT:
- App Style: %s
- User Request: %s

ORIGINAL ELEMENT HTML:
%s

INSTRUCTIONS:
1. Return ONLY the updated HTML for this specific element.
2. Ensure you use Tailwind CSS classes for styling. Do NOT use inline styles.
3. Do NOT return a full HTML document, just the element.
4. Make it look modern and professional.

UPDATED ELEMENT HTML:`, style, request, originalHTML)

	raw, err := c.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("magic edit: %w", err)
	}
	clean := StripFences(raw)
	if clean == "" {
		return "", fmt.Errorf("magic edit: empty response")
	}
	return clean, nil
}

// Insight is one improvement suggestion from flow analysis.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AnalyzeFlow asks the model for design improvements over the whole
// flow and returns the parsed suggestions.
func (c *Client) AnalyzeFlow(ctx context.Context, req domain.FlowRequest, screens []domain.Screen) ([]Insight, error) {
	var summary strings.Builder
	for i, s := range screens {
		fmt.Fprintf(&summary, "%d. %s (%s): %s\n", i+1, s.Name, s.Type, s.Description)
	}

	prompt := fmt.Sprintf(`You are a Senior UX/UI Designer acting as a Co-pilot. Analyze this app flow:
APP IDEA: %s
TYPE: %s
SCREENS:
%s
Provide 3 specific, high-impact design improvements for better UX, flow consistency, or visual appeal.
Keep each point concise (max 20 words).
Format as valid JSON:
{
  "improvements": [
    {"title": "Action Title", "description": "Concise detail"},
    {"title": "Action Title", "description": "Concise detail"},
    {"title": "Action Title", "description": "Concise detail"}
  ]
}`, req.Idea, req.Platform, summary.String())

	raw, err := c.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("analyze flow: %w", err)
	}
	var parsed struct {
		Improvements []Insight `json:"improvements"`
	}
	if err := ExtractJSON(raw, &parsed); err != nil {
		return nil, fmt.Errorf("analyze flow: %w", err)
	}
	return parsed.Improvements, nil
}

// ResearchKind selects which research angle to run.
type ResearchKind string

const (
	ResearchUser       ResearchKind = "user"
	ResearchCompetitor ResearchKind = "competitor"
)

// ResearchFlow runs user or competitor research for the flow idea.
func (c *Client) ResearchFlow(ctx context.Context, kind ResearchKind, req domain.FlowRequest) (*ResearchResult, error) {
	var prompt string
	switch kind {
	case ResearchUser:
		prompt = fmt.Sprintf(`Conduct comprehensive user research for this app idea: "%s" (Type: %s).
Focus on:
1. Target Audience Demographics
2. Key User Pain Points
3. User Desires & Motivations
4. Behavioral Patterns
Provide citations where possible.`, req.Idea, req.Platform)
	case ResearchCompetitor:
		prompt = fmt.Sprintf(`Conduct competitor research for this app idea: "%s" (Type: %s).
Identify 3-5 key competitors. For each, analyze:
1. Core Features
2. Strengths & Weaknesses
3. Pricing Models (if available)
4. Market Gaps this app can fill
Provide citations where possible.`, req.Idea, req.Platform)
	default:
		return nil, fmt.Errorf("unknown research kind %q", kind)
	}
	return c.Research(ctx, prompt)
}
