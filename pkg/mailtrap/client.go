package mailtrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

const (
	defaultBaseURL           = "https://send.api.mailtrap.io"
	sendPath                 = "/api/send"
	errorBodyReadLimit int64 = 1024
)

var (
	errAPITokenRequired = errors.New("mailtrap api token is required")
)

// Client wraps the Mailtrap transactional send API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Mailtrap client given an API token.
func NewClient(apiToken string, opts ...Option) (*Client, error) {
	trimmedToken := strings.TrimSpace(apiToken)
	if trimmedToken == "" {
		return nil, errAPITokenRequired
	}

	client := &Client{
		apiToken:   trimmedToken,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Address is an email with an optional display name.
type Address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Message is the payload sent to the transactional API.
type Message struct {
	From     Address   `json:"from"`
	To       []Address `json:"to"`
	Subject  string    `json:"subject"`
	Text     string    `json:"text,omitempty"`
	HTML     string    `json:"html,omitempty"`
	Category string    `json:"category,omitempty"`
}

// SendResult reports the provider's message IDs for a successful send.
type SendResult struct {
	Success    bool     `json:"success"`
	MessageIDs []string `json:"message_ids"`
}

// Send delivers one message through the transactional API.
func (c *Client) Send(ctx context.Context, msg Message) (*SendResult, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mailtrap client not configured")
	}
	if strings.TrimSpace(msg.From.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "from email is required")
	}
	if len(msg.To) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one recipient is required")
	}
	if strings.TrimSpace(msg.Subject) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject is required")
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal send request")
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + sendPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build send request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute send request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msgBody, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msgBody))), "send request failed")
	}

	var result SendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode send response")
	}
	return &result, nil
}
