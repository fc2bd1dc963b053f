package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"relaybot/internal/metrics"

	"go.uber.org/zap"
)

// QueryPlaceholder is replaced by the escaped user input in URL templates
const QueryPlaceholder = "{query}"

const maxBodySize = 1 << 20

// URLs holds the endpoint templates of the remote services
type URLs struct {
	ChatGPT   string
	Gemini    string
	DeepSeek  string
	Instagram string
	FreeFire  string
}

// Client calls the remote AI and lookup services. No method returns an error.
type Client struct {
	http   *http.Client
	urls   URLs
	logger *zap.Logger
}

// NewClient creates a gateway client with a bounded per-request timeout
func NewClient(urls URLs, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		urls:   urls,
		logger: logger,
	}
}

// AskChatGPT returns the ChatGPT reply text
func (c *Client) AskChatGPT(ctx context.Context, prompt string) string {
	res := c.FetchJSON(ctx, "chatgpt", BuildURL(c.urls.ChatGPT, prompt))
	return res.Field("reply", "response", "answer")
}

// AskGemini returns the Gemini reply text
func (c *Client) AskGemini(ctx context.Context, prompt string) string {
	res := c.FetchJSON(ctx, "gemini", BuildURL(c.urls.Gemini, prompt))
	return res.Field("response", "reply", "answer")
}

// AskDeepSeek returns the DeepSeek reply; the endpoint answers in plain text
func (c *Client) AskDeepSeek(ctx context.Context, prompt string) string {
	res := c.fetch(ctx, "deepseek", BuildURL(c.urls.DeepSeek, prompt))
	if res.Failed() {
		return res.String()
	}
	return res.Raw
}

// InstagramProfile looks up an Instagram profile by username
func (c *Client) InstagramProfile(ctx context.Context, username string) Result {
	return c.FetchJSON(ctx, "instagram", BuildURL(c.urls.Instagram, username))
}

// FreeFirePlayer looks up a Free Fire player by UID
func (c *Client) FreeFirePlayer(ctx context.Context, uid string) Result {
	return c.FetchJSON(ctx, "freefire", BuildURL(c.urls.FreeFire, uid))
}

// FetchJSON GETs rawURL and decodes the body when it is JSON
func (c *Client) FetchJSON(ctx context.Context, service, rawURL string) Result {
	res := c.fetch(ctx, service, rawURL)
	if res.Failed() {
		return res
	}
	var v any
	if err := json.Unmarshal([]byte(res.Raw), &v); err == nil {
		res.Value = v
	}
	return res
}

func (c *Client) fetch(ctx context.Context, service, rawURL string) Result {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		c.logger.Warn("Remote API request failed",
			zap.String("service", service),
			zap.Error(err),
		)
		metrics.IncLookup(service, "error")
		return Result{Err: err.Error()}
	}
	metrics.IncLookup(service, "ok")
	return Result{Raw: body}
}

func (c *Client) get(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("endpoint is not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(data), nil
}

// BuildURL substitutes the query-escaped input into the template
func BuildURL(template, input string) string {
	if template == "" {
		return ""
	}
	return strings.ReplaceAll(template, QueryPlaceholder, url.QueryEscape(input))
}
