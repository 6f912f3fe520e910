package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Defaults for the OpenRouter chat-completions endpoint. Base URL and
// models are overridable through the environment so the client can
// point at any compatible gateway.
const (
	defaultBaseURL       = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel         = "x-ai/grok-code-fast-1"
	defaultResearchModel = "perplexity/sonar"
)

// Client calls a chat-completions API to generate flows, screen markup,
// element edits and research. It is safe for concurrent use; several
// screens' generation requests are typically in flight at once.
type Client struct {
	apiKey        string
	baseURL       string
	model         string
	researchModel string
	http          *http.Client
}

// New creates a Client with the given API key. Endpoint and model
// overrides are read from FLOWCRAFT_API_URL, FLOWCRAFT_MODEL and
// FLOWCRAFT_RESEARCH_MODEL.
func New(apiKey string) *Client {
	c := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		model:         defaultModel,
		researchModel: defaultResearchModel,
		http:          &http.Client{Timeout: 120 * time.Second},
	}
	if v := os.Getenv("FLOWCRAFT_API_URL"); v != "" {
		c.baseURL = v
	}
	if v := os.Getenv("FLOWCRAFT_MODEL"); v != "" {
		c.model = v
	}
	if v := os.Getenv("FLOWCRAFT_RESEARCH_MODEL"); v != "" {
		c.researchModel = v
	}
	return c
}

// SetAPIKey replaces the key used for subsequent requests.
func (c *Client) SetAPIKey(key string) { c.apiKey = key }

// HasAPIKey reports whether a key is configured at all.
func (c *Client) HasAPIKey() bool { return c.apiKey != "" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

// ErrNoAPIKey reports a request attempted without a configured key.
var ErrNoAPIKey = fmt.Errorf("api key not configured")

// complete performs one chat-completion round trip and returns the
// model's message content plus any citations the provider attached.
func (c *Client) complete(ctx context.Context, model, prompt string) (string, []string, error) {
	if c.apiKey == "" {
		return "", nil, ErrNoAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   4096,
	})
	if err != nil {
		return "", nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Title", "FlowCraft Canvas Studio")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			return "", nil, fmt.Errorf("invalid api key (status %d)", resp.StatusCode)
		}
		return "", nil, fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil, fmt.Errorf("empty response from model")
	}
	return parsed.Choices[0].Message.Content, parsed.Citations, nil
}

// Complete runs a prompt against the primary model.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	content, _, err := c.complete(ctx, c.model, prompt)
	return content, err
}

// ResearchResult is a research answer with its source citations.
type ResearchResult struct {
	Content   string   `json:"content"`
	Citations []string `json:"citations"`
}

// Research runs a prompt against the citation-capable research model.
func (c *Client) Research(ctx context.Context, prompt string) (*ResearchResult, error) {
	content, citations, err := c.complete(ctx, c.researchModel, prompt)
	if err != nil {
		return nil, err
	}
	if citations == nil {
		citations = []string{}
	}
	return &ResearchResult{Content: content, Citations: citations}, nil
}
