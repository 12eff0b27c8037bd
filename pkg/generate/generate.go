// Package generate asks a text-generation service to produce a mesh
// description for a named object. The service is expected to answer
// with text-format STL, possibly wrapped in prose or code fences; the
// lenient STL decoder downstream tolerates whatever survives
// extraction.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generator produces a textual mesh description for a prompt. It is
// the only interface the benchmark core needs from the generation
// side.
type Generator interface {
	GenerateMesh(ctx context.Context, prompt string) (string, error)
}

// Client talks to an OpenAI-style chat-completions endpoint.
type Client struct {
	BaseURL string
	Model   string
	APIKey  string
	HTTP    *http.Client
}

var _ Generator = (*Client)(nil)

// NewClient creates a generation client for an OpenAI-compatible API.
func NewClient(baseURL, model, apiKey string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 120 * time.Second},
	}
}

const systemPrompt = "You are a 3D modeling assistant. Respond with a single " +
	"ASCII STL document (solid ... endsolid) describing the requested object. " +
	"Output only the STL, no commentary."

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateMesh sends the prompt and returns the raw model output.
func (c *Client) GenerateMesh(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("generate: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate: calling service: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("generate: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate: service returned %s: %s", resp.Status, snippet(payload))
	}

	var parsed chatResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", fmt.Errorf("generate: decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("generate: service returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// Prompt builds the user prompt for a named object.
func Prompt(name string) string {
	return fmt.Sprintf("Model the following object as an ASCII STL triangle mesh: %s", name)
}

// ExtractSolid pulls the solid...endsolid block out of model output,
// dropping markdown fences and surrounding prose. If no such block is
// found the input comes back unchanged; the lenient decoder degrades
// gracefully either way.
func ExtractSolid(text string) string {
	text = strings.ReplaceAll(text, "```", "\n")

	start := strings.Index(text, "solid")
	if start > 0 && text[start-1] == 'd' {
		// Landed inside "endsolid" with no opening "solid"; give up.
		return text
	}
	end := strings.LastIndex(text, "endsolid")
	if start < 0 || end < start {
		return text
	}
	// Include the rest of the endsolid line.
	tail := text[end:]
	if nl := strings.IndexByte(tail, '\n'); nl >= 0 {
		end += nl
	} else {
		end = len(text)
	}
	return text[start:end]
}

func snippet(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
