package stripewebhook

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

type usersRepository interface {
	ActivateSubscription(ctx context.Context, userID uuid.UUID, customerID, subscriptionID, plan string) error
	ActivateSubscriptionByCustomer(ctx context.Context, customerID string) (int64, error)
	CancelSubscriptionByCustomer(ctx context.Context, customerID string) (int64, error)
}

// ServiceParams groups dependencies for the webhook service.
type ServiceParams struct {
	UsersRepo usersRepository
}

// Service applies billing lifecycle events onto user subscription state.
type Service struct {
	users usersRepository
}

// NewService builds the webhook service.
func NewService(params ServiceParams) (*Service, error) {
	if params.UsersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "users repo required")
	}
	return &Service{users: params.UsersRepo}, nil
}

// HandleEvent routes one verified billing event. Unknown event types are
// acknowledged without side effects.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout session event")
		}
		return s.handleCheckoutCompleted(ctx, &session)

	case stripe.EventTypeInvoicePaid:
		customerID := event.GetObjectValue("customer")
		if customerID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "customer id missing from invoice event")
		}
		if _, err := s.users.ActivateSubscriptionByCustomer(ctx, customerID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate subscription")
		}
		return nil

	case stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode subscription event")
		}
		if sub.Customer == nil || sub.Customer.ID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "customer id missing from subscription event")
		}
		if _, err := s.users.CancelSubscriptionByCustomer(ctx, sub.Customer.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel subscription")
		}
		return nil

	default:
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	rawUserID := session.Metadata["user_id"]
	if rawUserID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "user_id missing from session metadata")
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user_id in session metadata")
	}

	var customerID string
	if session.Customer != nil {
		customerID = session.Customer.ID
	}
	var subscriptionID string
	if session.Subscription != nil {
		subscriptionID = session.Subscription.ID
	}
	plan := session.Metadata["plan"]

	if err := s.users.ActivateSubscription(ctx, userID, customerID, subscriptionID, plan); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate subscription")
	}
	return nil
}
