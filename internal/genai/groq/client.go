// Package groq implements a chat-completions client for the Groq API.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"

	systemPrompt = "You are an expert vocational counselor who writes personalized, motivating and concise descriptions."
)

var (
	ErrGenerationTimeout = errors.New("GENERATION_TIMEOUT")
	ErrGenerationFailed  = errors.New("GENERATION_FAILED")
)

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxRetries  int
	MaxTokens   int
	Temperature float64
}

// Client calls the Groq chat-completions endpoint. Output length and
// randomness are capped so descriptions stay short and varied.
type Client struct {
	config *Config
	client *http.Client
}

func NewClient(config *Config) (*Client, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, errors.New("groq api key is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Model == "" {
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

	return &Client{
		config: config,
		// No client-level timeout; the per-request context bounds each call.
		client: &http.Client{},
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt and returns the first choice's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
		TopP:        1.0,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
				// Continue with retry
			case <-ctx.Done():
				return "", ErrGenerationTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

		resp, lastErr = c.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return "", ErrGenerationTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrGenerationTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: no successful response after retries", ErrGenerationFailed)
	}
	defer resp.Body.Close()

	var apiResponse chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrGenerationFailed, err)
	}

	if len(apiResponse.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrGenerationFailed)
	}

	text := strings.TrimSpace(apiResponse.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", ErrGenerationFailed)
	}

	return text, nil
}
