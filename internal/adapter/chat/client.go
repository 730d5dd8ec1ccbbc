package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Platform exposes the chat-platform operations the bot relies on.
type Platform interface {
	WhoAmI(ctx context.Context) (*Identity, error)
	SendMessage(ctx context.Context, channelID, text string) (*Message, error)
	SendButtons(ctx context.Context, channelID, text string, buttons []Button) (*Message, error)
	EditMessage(ctx context.Context, channelID, messageID, text string) error
	PinMessage(ctx context.Context, channelID, messageID string) error
	RecentMessages(ctx context.Context, channelID string, limit int) ([]Message, error)
	HasAdministrator(ctx context.Context, channelID, userID string) (bool, error)
	PollEvents(ctx context.Context, cursor string, timeout time.Duration) (*EventPage, error)
}

// PlatformError is an API-level failure reported by the chat platform.
type PlatformError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform error %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a platform not-found failure.
func IsNotFound(err error) bool {
	var platformErr *PlatformError
	return errors.As(err, &platformErr) && platformErr.StatusCode == http.StatusNotFound
}

// HTTPPlatform implements Platform against the platform's REST API.
//
// Request URLs are built by string concatenation on a validated absolute
// base URL. Every call except the long-poll uses a bounded per-request
// timeout; the long-poll relies on its context plus a slack margin over the
// requested hold time.
type HTTPPlatform struct {
	baseURL    string
	token      string
	httpClient *http.Client
	pollClient *http.Client
	logger     *slog.Logger
}

const requestTimeout = 10 * time.Second

// NewHTTPPlatform creates a platform client with a bearer credential.
func NewHTTPPlatform(baseURL, token string, logger *slog.Logger) (*HTTPPlatform, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse platform url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("platform url must be absolute")
	}
	if token == "" {
		return nil, fmt.Errorf("platform token must be provided")
	}
	base := parsed.String()
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return &HTTPPlatform{
		baseURL:    base,
		token:      token,
		logger:     logger,
		httpClient: &http.Client{Timeout: requestTimeout},
		pollClient: &http.Client{},
	}, nil
}

// WhoAmI authenticates the credential and returns the bot's own identity.
func (p *HTTPPlatform) WhoAmI(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := p.do(ctx, http.MethodGet, "/api/v1/me", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// SendMessage posts a plain text message to a channel.
func (p *HTTPPlatform) SendMessage(ctx context.Context, channelID, text string) (*Message, error) {
	return p.send(ctx, channelID, sendRequest{Content: text})
}

// SendButtons posts a message with an attached row of action buttons.
func (p *HTTPPlatform) SendButtons(ctx context.Context, channelID, text string, buttons []Button) (*Message, error) {
	return p.send(ctx, channelID, sendRequest{Content: text, Buttons: buttons})
}

func (p *HTTPPlatform) send(ctx context.Context, channelID string, payload sendRequest) (*Message, error) {
	var message Message
	path := "/api/v1/channels/" + url.PathEscape(channelID) + "/messages"
	if err := p.do(ctx, http.MethodPost, path, payload, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// EditMessage replaces the text of an existing message.
func (p *HTTPPlatform) EditMessage(ctx context.Context, channelID, messageID, text string) error {
	path := "/api/v1/channels/" + url.PathEscape(channelID) + "/messages/" + url.PathEscape(messageID)
	return p.do(ctx, http.MethodPatch, path, editRequest{Content: text}, nil)
}

// PinMessage pins a message in its channel.
func (p *HTTPPlatform) PinMessage(ctx context.Context, channelID, messageID string) error {
	path := "/api/v1/channels/" + url.PathEscape(channelID) + "/pins/" + url.PathEscape(messageID)
	return p.do(ctx, http.MethodPut, path, nil, nil)
}

// RecentMessages fetches up to limit of the most recent messages in a
// channel, newest first.
func (p *HTTPPlatform) RecentMessages(ctx context.Context, channelID string, limit int) ([]Message, error) {
	var messages []Message
	path := "/api/v1/channels/" + url.PathEscape(channelID) + "/messages?limit=" + strconv.Itoa(limit)
	if err := p.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// HasAdministrator reports whether a user holds the platform administrator
// permission in a channel.
func (p *HTTPPlatform) HasAdministrator(ctx context.Context, channelID, userID string) (bool, error) {
	var member memberResponse
	path := "/api/v1/channels/" + url.PathEscape(channelID) + "/members/" + url.PathEscape(userID)
	if err := p.do(ctx, http.MethodGet, path, nil, &member); err != nil {
		return false, err
	}
	return member.Administrator, nil
}

// PollEvents long-polls the event feed starting after cursor. The platform
// holds the request open up to timeout when no events are pending. An empty
// cursor starts the feed at the current position.
func (p *HTTPPlatform) PollEvents(ctx context.Context, cursor string, timeout time.Duration) (*EventPage, error) {
	path := "/api/v1/events?timeout_ms=" + strconv.FormatInt(timeout.Milliseconds(), 10)
	if cursor != "" {
		path += "&cursor=" + url.QueryEscape(cursor)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.pollClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, p.apiError(resp.StatusCode, body)
	}

	var page EventPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (p *HTTPPlatform) do(ctx context.Context, method, path string, payload, result any) error {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		if result == nil || len(body) == 0 {
			return nil
		}
		return json.Unmarshal(body, result)
	default:
		return p.apiError(resp.StatusCode, body)
	}
}

func (p *HTTPPlatform) apiError(statusCode int, body []byte) error {
	platformErr := &PlatformError{StatusCode: statusCode}
	if err := json.Unmarshal(body, platformErr); err != nil || platformErr.Code == "" {
		platformErr.Code = http.StatusText(statusCode)
		platformErr.Message = string(body)
	}
	p.logger.Error("platform request failed",
		slog.Int("status", statusCode),
		slog.String("code", platformErr.Code),
	)
	return platformErr
}
