package rebrickable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

const (
	defaultBaseURL           = "https://rebrickable.com/api/v3"
	errorBodyReadLimit int64 = 1024
)

var (
	errAPIKeyRequired = errors.New("rebrickable api key is required")
)

// Client wraps the Rebrickable catalog API used for set lookups.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
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

// NewClient builds the Rebrickable client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:     trimmedKey,
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

// Set is the raw set payload returned by the API.
type Set struct {
	SetNum    string `json:"set_num"`
	Name      string `json:"name"`
	Year      int    `json:"year"`
	ThemeID   int    `json:"theme_id"`
	NumParts  int    `json:"num_parts"`
	SetImgURL string `json:"set_img_url"`
	SetURL    string `json:"set_url"`
}

// GetSet fetches a set by its catalog number. Numbers without a variant
// suffix get "-1" appended, matching how the catalog keys its sets.
func (c *Client) GetSet(ctx context.Context, setNumber string) (*Set, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "rebrickable client not configured")
	}
	trimmed := strings.TrimSpace(setNumber)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "set number is required")
	}
	if !strings.Contains(trimmed, "-") {
		trimmed += "-1"
	}

	endpoint := fmt.Sprintf("%s/lego/sets/%s/", strings.TrimRight(c.baseURL, "/"), url.PathEscape(trimmed))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build set lookup request")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "key "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute set lookup request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("set %s not found", trimmed))
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "set lookup failed")
	}

	var set Set
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode set lookup response")
	}
	return &set, nil
}
