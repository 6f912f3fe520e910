package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Models wrap answers in markdown fences or conversational text often
// enough that every response goes through recovery before parsing. A
// response that still fails to yield a usable payload surfaces as an
// error to the caller — screen-level errors mark the screen, never
// crash the flow.

var (
	fenceRe        = regexp.MustCompile("```[a-zA-Z]*\n?")
	htmlFragmentRe = regexp.MustCompile(`(?s)<div.*</div>`)
)

// StripFences removes markdown code fences and trims the result.
func StripFences(raw string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))
}

// ExtractJSON decodes the first well-formed JSON object in a possibly
// fenced or conversationally-wrapped response into v.
func ExtractJSON(raw string, v any) error {
	clean := StripFences(raw)
	if err := json.Unmarshal([]byte(clean), v); err == nil {
		return nil
	}
	// Fall back to the outermost brace pair.
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(clean[start:end+1]), v); err != nil {
		return fmt.Errorf("parse response JSON: %w", err)
	}
	return nil
}

// ExtractHTMLFragment pulls the first well-formed div fragment out of a
// raw model response. When no fragment matches, fence stripping is the
// fallback; an empty result is an error for the caller to turn into a
// screen-level failure.
func ExtractHTMLFragment(raw string) (string, error) {
	if m := htmlFragmentRe.FindString(raw); m != "" {
		return m, nil
	}
	clean := StripFences(raw)
	if clean == "" {
		return "", fmt.Errorf("no HTML fragment in response")
	}
	return clean, nil
}
