package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brickshare-es/brickshare-backend/api/middleware"
	"github.com/brickshare-es/brickshare-backend/api/responses"
	"github.com/brickshare-es/brickshare-backend/api/validators"
	"github.com/brickshare-es/brickshare-backend/internal/shipments"
	"github.com/brickshare-es/brickshare-backend/pkg/enums"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	"github.com/brickshare-es/brickshare-backend/pkg/logger"
)

// ShipmentsList returns the active shipments board for logistics staff.
func ShipmentsList(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(ctx))
		list, err := svc.ListActive(ctx, role)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// shipmentID parses the route parameter shared by the per-shipment handlers.
func shipmentID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "shipmentId"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipment id")
	}
	return id, nil
}

// ShipmentUpdate patches shipment tracking fields by shipment id.
func ShipmentUpdate(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		id, err := shipmentID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload shipments.UpdateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(ctx))
		updated, err := svc.Update(ctx, role, id, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// ShipmentPreregister announces the outbound parcel to the carrier.
func ShipmentPreregister(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		id, err := shipmentID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(ctx))
		shipment, err := svc.Preregister(ctx, role, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, shipment)
	}
}

// ShipmentReturnRequest starts the label-free return leg and mails the
// drop-off code to the subscriber.
func ShipmentReturnRequest(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		id, err := shipmentID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(ctx))
		shipment, err := svc.RequestReturn(ctx, role, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, shipment)
	}
}

// ShipmentLabel streams the carrier PDF label.
func ShipmentLabel(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		id, err := shipmentID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(ctx))
		label, err := svc.FetchLabel(ctx, role, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="label_`+id.String()+`.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(label)
	}
}

// ShipmentPickup schedules a courier collection for the shipment.
func ShipmentPickup(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		id, err := shipmentID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(ctx))
		shipment, err := svc.RequestPickup(ctx, role, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, shipment)
	}
}

// ShipmentTracking returns the raw carrier tracking events.
func ShipmentTracking(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		id, err := shipmentID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		role := enums.UserRole(middleware.RoleFromContext(ctx))
		events, err := svc.Track(ctx, role, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, events)
	}
}
