package llm

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	openai "github.com/sashabaranov/go-openai"
)

const (
	maxAttempts     = 3
	dialTimeout     = 20 * time.Second
	defaultTimeout  = 240 * time.Second
	defaultCooldown = 30 * time.Second
	defaultWait     = 500 * time.Millisecond
)

// Role constants for chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single-shot chat completion.
type Request struct {
	// Model is the model name. Empty means the configured default.
	Model    string
	Messages []Message
	// Temperature controls randomness. Zero keeps the provider default.
	Temperature float32
	// JSONResponse asks the endpoint for a json_object response format.
	JSONResponse bool
}

// Result holds the first choice content plus the raw completion response.
type Result struct {
	Content string
	Raw     openai.ChatCompletionResponse
}

// Completer is the gateway abstraction handlers depend on.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Result, error)
}

// Client calls an OpenAI-compatible chat completions endpoint with bounded
// retries. After all attempts fail it disables itself for a cool-down and
// fails fast until the cool-down elapses.
type Client struct {
	api       *openai.Client
	model     string
	baseURL   string
	cooldown  time.Duration
	retryWait time.Duration

	mu            sync.Mutex
	disabledUntil time.Time
}

// New creates a gateway client. Requests go to <baseURL>/api/chat/completions.
// A zero timeout means the default total timeout of 240s.
func New(baseURL, apiKey, defaultModel string, timeout time.Duration) *Client {
	base := strings.TrimRight(baseURL, "/") + "/api"
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = base
	config.HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:         (&net.Dialer{Timeout: dialTimeout}).DialContext,
			MaxConnsPerHost:     20,
			MaxIdleConnsPerHost: 15,
		},
	}

	return &Client{
		api:       openai.NewClientWithConfig(config),
		model:     defaultModel,
		baseURL:   base,
		cooldown:  defaultCooldown,
		retryWait: defaultWait,
	}
}

// DefaultModel returns the configured fallback model name.
func (c *Client) DefaultModel() string { return c.model }

// Ping verifies the endpoint answers at all. Used as a startup health check.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.ListModels(ctx)
	return err
}

// Complete issues one chat completion, retrying connect failures, timeouts
// and 5xx responses up to three attempts total. 4xx is returned immediately
// as *ErrClient.
func (c *Client) Complete(ctx context.Context, req Request) (*Result, error) {
	if err := c.checkEnabled(); err != nil {
		return nil, err
	}

	model := req.Model
	if model == "" {
		model = c.model
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req.Messages),
		Temperature: req.Temperature,
		Stream:      false,
	}
	if req.JSONResponse {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	requestID := middleware.GetReqID(ctx)
	if requestID == "" {
		requestID = "n/a"
	}
	url := c.baseURL + "/chat/completions"

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.api.CreateChatCompletion(ctx, chatReq)
		status := statusOf(err)
		slog.Info("llm request",
			"request_id", requestID,
			"attempt", attempt,
			"status", status,
			"url", url,
		)

		if err == nil {
			if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
				return nil, &ErrBadResponse{Err: errors.New("no choices in completion response")}
			}
			return &Result{Content: resp.Choices[0].Message.Content, Raw: resp}, nil
		}
		lastErr = err

		// The caller went away; nothing to retry for.
		if errors.Is(err, context.Canceled) {
			return nil, &ErrUnavailable{Err: err}
		}
		if status >= 400 && status < 500 {
			return nil, &ErrClient{StatusCode: status, Err: err}
		}

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, &ErrUnavailable{Err: ctx.Err()}
		case <-time.After(time.Duration(attempt) * c.retryWait):
		}
	}

	c.trip()
	return nil, &ErrUnavailable{Err: lastErr}
}

func (c *Client) checkEnabled() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Now().Before(c.disabledUntil) {
		return &ErrUnavailable{Err: errors.New("circuit open after repeated failures")}
	}
	return nil
}

func (c *Client) trip() {
	c.mu.Lock()
	c.disabledUntil = time.Now().Add(c.cooldown)
	c.mu.Unlock()
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case RoleSystem:
			role = openai.ChatMessageRoleSystem
		case RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
