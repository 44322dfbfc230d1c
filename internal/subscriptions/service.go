package subscriptions

import (
	"context"
	"strings"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	stripeclient "github.com/brickshare-es/brickshare-backend/pkg/stripe"
)

type checkoutClient interface {
	CreateSubscriptionCheckout(ctx context.Context, req stripeclient.CheckoutSessionRequest) (*stripeclient.CheckoutSession, error)
}

// StartCheckoutInput carries the request to open a hosted checkout.
type StartCheckoutInput struct {
	Plan    string `json:"plan"`
	PriceID string `json:"priceId" validate:"required"`
	UserID  string `json:"userId"`
}

// CheckoutDTO is the redirect payload returned to the storefront.
type CheckoutDTO struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// Service starts subscription checkouts with the billing provider.
type Service interface {
	StartCheckout(ctx context.Context, input StartCheckoutInput) (*CheckoutDTO, error)
}

// ServiceParams groups dependencies for the subscription service.
type ServiceParams struct {
	Stripe checkoutClient
}

type service struct {
	stripe checkoutClient
}

// NewService builds a subscription service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Stripe == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stripe client is required")
	}
	return &service{stripe: params.Stripe}, nil
}

// StartCheckout validates the request and opens a hosted checkout session.
// Invalid input never reaches the provider.
func (s *service) StartCheckout(ctx context.Context, input StartCheckoutInput) (*CheckoutDTO, error) {
	priceID := strings.TrimSpace(input.PriceID)
	userID := strings.TrimSpace(input.UserID)
	if priceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "priceId is required")
	}
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userId is required")
	}

	session, err := s.stripe.CreateSubscriptionCheckout(ctx, stripeclient.CheckoutSessionRequest{
		PriceID: priceID,
		UserID:  userID,
		Plan:    strings.TrimSpace(input.Plan),
	})
	if err != nil {
		return nil, err
	}
	return &CheckoutDTO{SessionID: session.ID, URL: session.URL}, nil
}
