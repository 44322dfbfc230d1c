package correos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/brickshare-es/brickshare-backend/pkg/config"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

const (
	defaultBaseURL               = "https://api-pre.correos.es"
	defaultAuthURL               = "https://apioauthcid.correos.es/Api/Authorize/Token"
	defaultScope                 = "Preregistro"
	homepaqsPath                 = "/logistics/terminals/api/v1/homepaqs"
	defaultDistanceMeters        = 5000
	defaultTokenTTLMinutes       = 30
	errorBodyReadLimit     int64 = 1024
	tokenExpirySafety            = 60 * time.Second
)

var (
	errCredentialsRequired = errors.New("correos client credentials are required")
)

// Client talks to the Correos logistics APIs using OAuth client credentials.
// Tokens are cached in memory and refreshed once on an auth failure.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	authURL      string
	clientID     string
	clientSecret string
	contractID   string
	scope        string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
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

// WithAuthURL overrides the configured token endpoint.
func WithAuthURL(authURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(authURL)
		if trimmed != "" {
			c.authURL = trimmed
		}
	}
}

// NewClient builds the Correos client from configuration.
func NewClient(cfg config.CorreosConfig, opts ...Option) (*Client, error) {
	clientID := strings.TrimSpace(cfg.ClientID)
	clientSecret := strings.TrimSpace(cfg.ClientSecret)
	if clientID == "" || clientSecret == "" {
		return nil, errCredentialsRequired
	}

	client := &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      defaultBaseURL,
		authURL:      defaultAuthURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		contractID:   strings.TrimSpace(cfg.ContractID),
		scope:        defaultScope,
	}
	if trimmed := strings.TrimSpace(cfg.BaseURL); trimmed != "" {
		client.baseURL = trimmed
	}
	if trimmed := strings.TrimSpace(cfg.AuthURL); trimmed != "" {
		client.authURL = trimmed
	}
	if trimmed := strings.TrimSpace(cfg.Scope); trimmed != "" {
		client.scope = trimmed
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// SearchRequest bounds a terminal search around a coordinate.
type SearchRequest struct {
	Latitude  float64
	Longitude float64
	// DistanceMeters limits the search radius. Zero means 5000 meters.
	DistanceMeters int
}

// Coordinate decodes a coordinate the API returns either as a JSON number or
// as a comma-decimal string ("40,4168"). Unparsable values decode to zero.
type Coordinate float64

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*c = 0
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		value, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(raw), ",", ".", 1), 64)
		if err != nil {
			*c = 0
			return nil
		}
		*c = Coordinate(value)
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*c = Coordinate(value)
	return nil
}

// Terminal is the raw homepaq DTO. The upstream uses different field names
// per terminal generation, so several attributes carry fallback candidates.
type Terminal struct {
	TerminalID         string     `json:"terminalId"`
	CodHomepaq         string     `json:"codHomepaq"`
	LegacyID           string     `json:"id"`
	Alias              string     `json:"alias"`
	ChannelDescription string     `json:"channelDescription"`
	Name               string     `json:"name"`
	Address            string     `json:"address"`
	Direccion          string     `json:"direccion"`
	PostalCode         string     `json:"postalCode"`
	CP                 string     `json:"cp"`
	Municipality       string     `json:"municipality"`
	Poblacion          string     `json:"poblacion"`
	Location           string     `json:"location"`
	LatitudeWGS84      Coordinate `json:"latitudeWGS84"`
	LatitudeETRS89     Coordinate `json:"latitudeETRS89"`
	Latitude           Coordinate `json:"latitude"`
	Lat                Coordinate `json:"lat"`
	LongitudeWGS84     Coordinate `json:"longitudeWGS84"`
	LongitudeETRS89    Coordinate `json:"longitudeETRS89"`
	Longitude          Coordinate `json:"longitude"`
	Lng                Coordinate `json:"lng"`
	OpeningDescription string     `json:"openingDescription"`
	OpeningHours       string     `json:"openingHours"`
	FullSchedule       string     `json:"fullSchedule"`
	TerminalType       string     `json:"terminalType"`
}

// SearchTerminals returns the PUDO terminals near the provided coordinate.
// An expired or revoked token is refreshed once and the search retried.
func (c *Client) SearchTerminals(ctx context.Context, req SearchRequest) ([]Terminal, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "correos client not configured")
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "latitude and longitude are out of range")
	}

	distance := req.DistanceMeters
	if distance <= 0 {
		distance = defaultDistanceMeters
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + homepaqsPath
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	query.Set("distance", strconv.Itoa(distance))

	// The terminals API wants the raw credentials as headers alongside the
	// bearer token.
	resp, err := c.doAuthorized(ctx, func() (*http.Request, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("client_id", c.clientID)
		httpReq.Header.Set("client_secret", c.clientSecret)
		return httpReq, nil
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "terminal search failed")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read terminal search response")
	}

	var envelope struct {
		Content []Terminal `json:"content"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Content != nil {
		return envelope.Content, nil
	}
	var terminals []Terminal
	if err := json.Unmarshal(body, &terminals); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode terminal search response")
	}
	return terminals, nil
}

// doAuthorized runs one request built by build with a bearer token attached,
// refreshing the token and retrying once when the API rejects it. The build
// callback produces a fresh request per attempt so bodies are re-readable.
func (c *Client) doAuthorized(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	token, err := c.token(ctx, false)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(build, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		return resp, nil
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyReadLimit))
	_ = resp.Body.Close()

	token, err = c.token(ctx, true)
	if err != nil {
		return nil, err
	}
	return c.send(build, token)
}

func (c *Client) send(build func() (*http.Request, error), token string) (*http.Response, error) {
	httpReq, err := build()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build correos request")
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute correos request")
	}
	return resp, nil
}

func statusError(resp *http.Response, msg string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), msg)
}

// token returns a cached access token, fetching a new one when missing,
// near expiry, or when force is set. The token endpoint reports expiresIn
// in minutes; a missing value assumes 30.
func (c *Client) token(ctx context.Context, force bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-tokenExpirySafety)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("scope", c.scope)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build token request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute token request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp, "token request failed")
	}

	var tokenResp struct {
		AccessToken string      `json:"access_token"`
		ExpiresIn   json.Number `json:"expiresIn"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode token response")
	}
	if tokenResp.AccessToken == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "token response missing access_token")
	}

	minutes := int64(defaultTokenTTLMinutes)
	if parsed, err := tokenResp.ExpiresIn.Int64(); err == nil && parsed > 0 {
		minutes = parsed
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(minutes) * time.Minute)
	return c.accessToken, nil
}
