package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is the recommended Gemini model for prompt rewriting.
// gemini-3-flash-preview balances rewrite quality against per-frame latency.
const DefaultModel = "gemini-3-flash-preview"

// Compile-time check that Client implements GenerativeClient.
var _ GenerativeClient = (*Client)(nil)

// Client bridges the genai SDK to the GenerativeClient interface the
// Transformer consumes. The narrow local types keep the Transformer
// testable without the SDK.
type Client struct {
	client *genai.Client
}

// NewClient creates a new Client with the given API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}
	return &Client{client: client}, nil
}

// Close is a no-op for the current genai SDK (no cleanup needed).
func (c *Client) Close() error {
	return nil
}

// GenerateContent implements GenerativeClient by delegating to the SDK.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	result, err := c.client.Models.GenerateContent(ctx, model, toGenaiContents(contents), toGenaiConfig(config))
	if err != nil {
		var apiErr *genai.APIError
		if errors.As(err, &apiErr) {
			return nil, NewAPIError(apiErr.Code,
				fmt.Sprintf("gemini API error (HTTP %d): %s", apiErr.Code, apiErr.Message))
		}
		return nil, err
	}
	return &GenerateContentResponse{Text: result.Text()}, nil
}

func toGenaiContents(contents []*Content) []*genai.Content {
	out := make([]*genai.Content, len(contents))
	for i, content := range contents {
		out[i] = toGenaiContent(content)
	}
	return out
}

func toGenaiContent(content *Content) *genai.Content {
	if content == nil {
		return nil
	}
	parts := make([]*genai.Part, len(content.Parts))
	for i, part := range content.Parts {
		parts[i] = &genai.Part{Text: part.Text}
	}
	return &genai.Content{Parts: parts}
}

func toGenaiConfig(config *GenerateContentConfig) *genai.GenerateContentConfig {
	if config == nil {
		return nil
	}
	out := &genai.GenerateContentConfig{
		Temperature:       config.Temperature,
		ResponseMIMEType:  config.ResponseMIMEType,
		SystemInstruction: toGenaiContent(config.SystemInstruction),
		ResponseSchema:    toGenaiSchema(config.ResponseSchema),
	}
	if config.ThinkingLevel != "" {
		out.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingLevel: genai.ThinkingLevel(config.ThinkingLevel),
		}
	}
	return out
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	gs := &genai.Schema{
		Type:             genai.Type(s.Type),
		Enum:             s.Enum,
		Required:         s.Required,
		PropertyOrdering: s.PropertyOrdering,
		Description:      s.Description,
		Items:            toGenaiSchema(s.Items),
	}
	if s.Properties != nil {
		gs.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			gs.Properties[k] = toGenaiSchema(v)
		}
	}
	return gs
}
