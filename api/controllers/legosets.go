package controllers

import (
	"net/http"

	"github.com/brickshare-es/brickshare-backend/api/responses"
	"github.com/brickshare-es/brickshare-backend/api/validators"
	"github.com/brickshare-es/brickshare-backend/internal/legosets"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	"github.com/brickshare-es/brickshare-backend/pkg/logger"
)

type legoSetLookupPayload struct {
	SetNumber string `json:"set_number" validate:"required"`
}

// LegoSetLookup fetches set details from Rebrickable by set number.
func LegoSetLookup(svc legosets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "lego set service unavailable"))
			return
		}

		var payload legoSetLookupPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		details, err := svc.Fetch(ctx, payload.SetNumber)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, details)
	}
}
