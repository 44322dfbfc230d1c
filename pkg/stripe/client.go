package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v84"

	"github.com/brickshare-es/brickshare-backend/pkg/config"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	"github.com/brickshare-es/brickshare-backend/pkg/logger"
)

var (
	errAPIKeyRequired = errors.New("stripe api key is required")
)

// Client wraps Stripe's API client plus webhook verification metadata.
// The signing secret is optional; when empty, webhook payloads are parsed
// without signature verification.
type Client struct {
	api           *stripe.Client
	signingSecret string
	successURL    string
	cancelURL     string
}

// NewClient initializes Stripe once with the configured secrets.
func NewClient(ctx context.Context, cfg config.StripeConfig, logg *logger.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}

	signingSecret := strings.TrimSpace(cfg.WebhookSecret)

	api := stripe.NewClient(apiKey)
	stripe.Key = apiKey

	if logg != nil {
		mode := "verified webhooks"
		if signingSecret == "" {
			mode = "unverified webhooks"
		}
		logg.Info(ctx, fmt.Sprintf("stripe client initialized (%s)", mode))
	}

	return &Client{
		api:           api,
		signingSecret: signingSecret,
		successURL:    strings.TrimSpace(cfg.SuccessURL),
		cancelURL:     strings.TrimSpace(cfg.CancelURL),
	}, nil
}

// API returns the underlying Stripe API client.
func (c *Client) API() *stripe.Client {
	if c == nil {
		return nil
	}
	return c.api
}

// SigningSecret returns the webhook signing secret, empty when unset.
func (c *Client) SigningSecret() string {
	if c == nil {
		return ""
	}
	return c.signingSecret
}

// CheckoutSessionRequest carries the data needed to start a subscription checkout.
type CheckoutSessionRequest struct {
	PriceID       string
	UserID        string
	CustomerEmail string
	Plan          string
}

// CheckoutSession is the subset of the created session the API exposes.
type CheckoutSession struct {
	ID  string
	URL string
}

// CreateSubscriptionCheckout opens a hosted checkout session in subscription mode.
func (c *Client) CreateSubscriptionCheckout(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error) {
	if c == nil || c.api == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stripe client not configured")
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(c.successURL),
		CancelURL:  stripe.String(c.cancelURL),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"user_id": req.UserID,
			"plan":    req.Plan,
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	session, err := c.api.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create checkout session")
	}
	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}
