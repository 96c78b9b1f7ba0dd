// Package gemini implements text generation through the Google GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

type Config struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxTokens   int32
	Temperature float32
}

// Client wraps the Google GenAI client behind the engine's TextGenerator
// interface.
type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(ctx context.Context, config *Config) (*Client, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, errors.New("gemini api key is required")
	}
	if config.Model = strings.TrimSpace(config.Model); config.Model == "" {
		config.Model = defaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 150
	}
	if config.Temperature == 0 {
		config.Temperature = 0.9
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, config: config}, nil
}

// Generate sends the prompt to Gemini and returns the first textual response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	temperature := c.config.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: c.config.MaxTokens,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.config.Model
}
