package subscriptions

import (
	"context"
	"testing"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	stripeclient "github.com/brickshare-es/brickshare-backend/pkg/stripe"
)

type stubCheckoutClient struct {
	session  *stripeclient.CheckoutSession
	err      error
	requests []stripeclient.CheckoutSessionRequest
}

func (s *stubCheckoutClient) CreateSubscriptionCheckout(ctx context.Context, req stripeclient.CheckoutSessionRequest) (*stripeclient.CheckoutSession, error) {
	s.requests = append(s.requests, req)
	return s.session, s.err
}

func TestStartCheckoutReturnsRedirectURL(t *testing.T) {
	client := &stubCheckoutClient{
		session: &stripeclient.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.stripe.com/c/pay/cs_test_123"},
	}
	svc, err := NewService(ServiceParams{Stripe: client})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.StartCheckout(context.Background(), StartCheckoutInput{
		Plan:    "familiar",
		PriceID: "price_123",
		UserID:  "f3b8f9f0-0000-0000-0000-000000000000",
	})
	if err != nil {
		t.Fatalf("start checkout: %v", err)
	}
	if dto.URL != "https://checkout.stripe.com/c/pay/cs_test_123" {
		t.Fatalf("unexpected url %q", dto.URL)
	}
	if len(client.requests) != 1 {
		t.Fatalf("expected one provider call, got %d", len(client.requests))
	}
	req := client.requests[0]
	if req.PriceID != "price_123" || req.Plan != "familiar" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestStartCheckoutMissingPriceIDSkipsProvider(t *testing.T) {
	client := &stubCheckoutClient{}
	svc, err := NewService(ServiceParams{Stripe: client})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.StartCheckout(context.Background(), StartCheckoutInput{
		Plan:   "familiar",
		UserID: "user-1",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(client.requests) != 0 {
		t.Fatal("provider must not be called for invalid input")
	}
}

func TestStartCheckoutMissingUserIDSkipsProvider(t *testing.T) {
	client := &stubCheckoutClient{}
	svc, err := NewService(ServiceParams{Stripe: client})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.StartCheckout(context.Background(), StartCheckoutInput{
		Plan:    "familiar",
		PriceID: "price_123",
		UserID:  "   ",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(client.requests) != 0 {
		t.Fatal("provider must not be called for invalid input")
	}
}
