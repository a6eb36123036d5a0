// Package openai implements ai.Client against the OpenAI Chat
// Completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"resumind-backend/internal/ai"
	"resumind-backend/internal/extract"
	"resumind-backend/internal/shared/storage/object"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client calls OpenAI Chat Completions. Feedback calls read the stored
// resume PDF through the object store and inline its extracted text.
type Client struct {
	apiKey     string
	model      string
	store      object.ObjectStore
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client. model is the default model
// for calls that do not override it.
func NewClient(apiKey, model string, store object.ObjectStore) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required for OpenAI")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		store:  store,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Chat sends a single user message and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, prompt string, opts ai.ChatOptions) (*ai.Response, error) {
	messages := []chatMessage{{Role: "user", Content: prompt}}
	return c.complete(ctx, messages, opts)
}

// Feedback critiques a stored resume. The PDF at resumeKey is opened,
// its text extracted and appended to the instructions as a user message.
func (c *Client) Feedback(ctx context.Context, resumeKey string, instructions string, opts ai.ChatOptions) (*ai.Response, error) {
	resumeText, err := extract.Text(ctx, c.store, resumeKey)
	if err != nil {
		return nil, fmt.Errorf("feedback resume=%s: %w", resumeKey, err)
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, fmt.Errorf("feedback resume=%s: no text extracted", resumeKey)
	}
	messages := []chatMessage{
		{Role: "user", Content: instructions},
		{Role: "user", Content: "Resume content:\n\n" + resumeText},
	}
	return c.complete(ctx, messages, opts)
}

func (c *Client) complete(ctx context.Context, messages []chatMessage, opts ai.ChatOptions) (*ai.Response, error) {
	model := c.model
	if strings.TrimSpace(opts.Model) != "" {
		model = opts.Model
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: opts.Temperature,
	}
	if opts.JSONResponse {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices")
	}

	content := parsed.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("openai response empty content")
	}
	logUsage(model, parsed.Usage)

	return &ai.Response{
		Message: ai.Message{
			Role:    "assistant",
			Content: content,
		},
	}, nil
}

func logUsage(model string, usage *struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}) {
	if usage == nil {
		log.Printf("ai response model=%s", model)
		return
	}
	log.Printf("ai response model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}

var _ ai.Client = (*Client)(nil)
