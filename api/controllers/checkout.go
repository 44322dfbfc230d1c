package controllers

import (
	"net/http"

	"github.com/brickshare-es/brickshare-backend/api/middleware"
	"github.com/brickshare-es/brickshare-backend/api/responses"
	"github.com/brickshare-es/brickshare-backend/api/validators"
	"github.com/brickshare-es/brickshare-backend/internal/subscriptions"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	"github.com/brickshare-es/brickshare-backend/pkg/logger"
)

// CheckoutSessionCreate opens a Stripe subscription checkout and returns
// the redirect URL. The userId in the body defaults to the caller.
func CheckoutSessionCreate(svc subscriptions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "subscription service unavailable"))
			return
		}

		var payload subscriptions.StartCheckoutInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if payload.UserID == "" {
			payload.UserID = middleware.UserIDFromContext(ctx)
		}

		session, err := svc.StartCheckout(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}
