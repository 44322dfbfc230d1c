package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

type orderRepository interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// SetSummary is the rented set shown on the order history.
type SetSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL *string   `json:"image_url,omitempty"`
	Theme    string    `json:"theme"`
}

// OrderDTO is one rental cycle on the user's history.
type OrderDTO struct {
	ID             uuid.UUID   `json:"id"`
	OrderDate      time.Time   `json:"order_date"`
	ShippedDate    *time.Time  `json:"shipped_date,omitempty"`
	DeliveredDate  *time.Time  `json:"delivered_date,omitempty"`
	ReturnedDate   *time.Time  `json:"returned_date,omitempty"`
	Status         string      `json:"status"`
	TrackingNumber *string     `json:"tracking_number,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
	Set            *SetSummary `json:"set,omitempty"`
}

// Service exposes the subscriber order history.
type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
}

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Repo orderRepository
}

type service struct {
	repo orderRepository
}

// NewService builds an order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// ListForUser returns the user's rental history, newest first.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	orders, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for _, order := range orders {
		dto := OrderDTO{
			ID:             order.ID,
			OrderDate:      order.OrderDate,
			ShippedDate:    order.ShippedDate,
			DeliveredDate:  order.DeliveredDate,
			ReturnedDate:   order.ReturnedDate,
			Status:         order.Status,
			TrackingNumber: order.TrackingNumber,
			Notes:          order.Notes,
		}
		if order.Set != nil {
			dto.Set = &SetSummary{
				ID:       order.Set.ID,
				Name:     order.Set.Name,
				ImageURL: order.Set.ImageURL,
				Theme:    order.Set.Theme,
			}
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}
