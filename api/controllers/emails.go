package controllers

import (
	"net/http"

	"github.com/brickshare-es/brickshare-backend/api/responses"
	"github.com/brickshare-es/brickshare-backend/api/validators"
	"github.com/brickshare-es/brickshare-backend/internal/mailer"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	"github.com/brickshare-es/brickshare-backend/pkg/logger"
)

// EmailSend relays a transactional email through the mail provider.
func EmailSend(svc mailer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "mailer service unavailable"))
			return
		}

		var payload mailer.SendInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Send(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
