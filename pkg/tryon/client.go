// Package tryon generates a photo of a person wearing the current design.
//
// The design of the selected zone, a photo of the user and a pose
// instruction derived from the zone's view are sent to the Gemini
// generateContent REST endpoint. Only one request runs per [Guard]; there
// is no retry.
package tryon

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/furiarock/mockstudio/pkg/buildinfo"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/observability"
)

// Defaults for the generative image API.
const (
	DefaultEndpoint  = "https://generativelanguage.googleapis.com"
	DefaultModel     = "gemini-2.5-flash-image"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
	DefaultTimeout   = 90 * time.Second
)

// maxResponseBytes bounds the response body. Generated images arrive
// base64-encoded inline.
const maxResponseBytes = 32 << 20

// Client calls the generateContent endpoint.
type Client struct {
	http     *http.Client
	endpoint string
	model    string
	apiKey   string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API base URL.
func WithEndpoint(u string) Option {
	return func(c *Client) { c.endpoint = strings.TrimRight(u, "/") }
}

// WithModel overrides the model name.
func WithModel(m string) Option { return func(c *Client) { c.model = m } }

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

// NewClient returns a client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		endpoint: DefaultEndpoint,
		model:    DefaultModel,
		apiKey:   apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Part is one input or output item of a generateContent call. Exactly one
// of Text and InlineData is set.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData is a base64 blob with its MIME type.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate sends parts to the model and returns the first inline image of
// the first candidate, decoded. A response without an image fails with
// EXTERNAL_SERVICE carrying whatever text the model returned.
func (c *Client) Generate(ctx context.Context, parts []Part) (data []byte, mimeType string, err error) {
	if c.apiKey == "" {
		return nil, "", errors.New(errors.ErrCodeUnauthorized, "no API key configured for the try-on service")
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Role: "user", Parts: parts}}})
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "encode try-on request")
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "build try-on request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil || isTimeout(err) {
			return nil, "", errors.Wrap(errors.ErrCodeTimeout, err, "try-on service did not answer in time")
		}
		return nil, "", errors.Wrap(errors.ErrCodeExternalService, err, "try-on service unreachable")
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeExternalService, err, "read try-on response")
	}
	if err := checkStatus(resp, raw); err != nil {
		return nil, "", err
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeExternalService, err, "decode try-on response")
	}
	return firstImage(out)
}

func firstImage(out generateResponse) ([]byte, string, error) {
	var text []string
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, "", errors.Wrap(errors.ErrCodeExternalService, err, "decode generated image")
				}
				mt := p.InlineData.MimeType
				if mt == "" {
					mt = "image/png"
				}
				return data, mt, nil
			}
			if p.Text != "" {
				text = append(text, strings.TrimSpace(p.Text))
			}
		}
	}
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		text = append(text, "blocked: "+out.PromptFeedback.BlockReason)
	}
	msg := "the model returned no image"
	if len(text) > 0 {
		msg += ": " + strings.Join(text, " ")
	}
	return nil, "", errors.New(errors.ErrCodeExternalService, "%s", msg)
}

func checkStatus(resp *http.Response, raw []byte) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	msg := http.StatusText(resp.StatusCode)
	var ae apiError
	if json.Unmarshal(raw, &ae) == nil && ae.Error.Message != "" {
		msg = ae.Error.Message
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		retry, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return errors.Wrap(errors.ErrCodeRateLimited, &errors.RateLimitedError{RetryAfter: retry, Message: msg},
			"try-on service is rate limited: %s", msg)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "try-on service rejected the API key: %s", msg)
	default:
		return errors.New(errors.ErrCodeExternalService, "try-on service returned %d: %s", resp.StatusCode, msg)
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return stderrors.As(err, &t) && t.Timeout()
}
