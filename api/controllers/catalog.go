package controllers

import (
	"net/http"

	"github.com/brickshare-es/brickshare-backend/api/responses"
	"github.com/brickshare-es/brickshare-backend/api/validators"
	"github.com/brickshare-es/brickshare-backend/internal/catalog"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	"github.com/brickshare-es/brickshare-backend/pkg/logger"
)

// CatalogList returns the rentable set catalog, newest first.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 200)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1_000_000)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		products, err := svc.List(ctx, limit, offset)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}
