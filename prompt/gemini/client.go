// Package gemini adapts the Google generative model API to the two call
// shapes the application needs: an ordered finite stream of text fragments,
// and a synchronous structured-JSON call.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"

	"promptforge/prompt"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrGenerationFailed wraps any transport or service error from the backend.
// Callers surface it as a single user-visible message.
var ErrGenerationFailed = errors.New("the model failed to generate a response")

// Config holds the client configuration.
type Config struct {
	APIKey string
	Model  string
}

// Client talks to the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. The API key is required.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Stream sends the assembled request and yields text fragments in the order
// the service produces them. The sequence is finite and non-restartable; any
// service error ends it with ErrGenerationFailed.
func (c *Client) Stream(ctx context.Context, req prompt.GenerationRequest) iter.Seq2[string, error] {
	parts := []*genai.Part{genai.NewPartFromText(req.IdeaText)}
	for _, a := range req.Attachments {
		parts = append(parts, genai.NewPartFromBytes(a.Data, a.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	return func(yield func(string, error) bool) {
		for resp, err := range c.client.Models.GenerateContentStream(ctx, c.model, contents, config) {
			if err != nil {
				yield("", fmt.Errorf("%w: %v", ErrGenerationFailed, err))
				return
			}
			if !yield(resp.Text(), nil) {
				return
			}
		}
	}
}

// generateJSON performs the sibling non-streaming call with a response schema
// and unmarshals the structured result into out.
func (c *Client) generateJSON(ctx context.Context, systemInstruction, text string, schema *genai.Schema, out any) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    schema,
	}
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	raw := strings.TrimSpace(resp.Text())
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", ErrGenerationFailed, err)
	}
	return nil
}
