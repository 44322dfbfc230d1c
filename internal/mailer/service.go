package mailer

import (
	"context"
	"strings"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	"github.com/brickshare-es/brickshare-backend/pkg/mailtrap"
)

const (
	defaultFromName = "Brickshare"
	defaultText     = "Brickshare Notification"
	defaultCategory = "Notification"
)

type mailClient interface {
	Send(ctx context.Context, msg mailtrap.Message) (*mailtrap.SendResult, error)
}

// SendInput carries one outbound notification.
type SendInput struct {
	To       string `json:"to" validate:"required,email"`
	Subject  string `json:"subject" validate:"required"`
	HTML     string `json:"html" validate:"required"`
	Text     string `json:"text"`
	FromName string `json:"from_name"`
}

// SendResultDTO reports the provider message ids.
type SendResultDTO struct {
	MessageIDs []string `json:"message_ids"`
}

// Service sends transactional notifications.
type Service interface {
	Send(ctx context.Context, input SendInput) (*SendResultDTO, error)
}

// ServiceParams groups dependencies for the mailer service.
type ServiceParams struct {
	Client    mailClient
	FromEmail string
}

type service struct {
	client    mailClient
	fromEmail string
}

// NewService builds a mailer service. A nil client means the API token was
// never configured; sends fail fast without reaching the network.
func NewService(params ServiceParams) (Service, error) {
	if strings.TrimSpace(params.FromEmail) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "from email is required")
	}
	return &service{
		client:    params.Client,
		fromEmail: strings.TrimSpace(params.FromEmail),
	}, nil
}

// Send delivers one notification, applying the house defaults.
func (s *service) Send(ctx context.Context, input SendInput) (*SendResultDTO, error) {
	if s.client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "mail delivery is not configured")
	}
	if strings.TrimSpace(input.To) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient is required")
	}
	if strings.TrimSpace(input.Subject) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject is required")
	}
	if strings.TrimSpace(input.HTML) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "html body is required")
	}

	fromName := strings.TrimSpace(input.FromName)
	if fromName == "" {
		fromName = defaultFromName
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		text = defaultText
	}

	result, err := s.client.Send(ctx, mailtrap.Message{
		From:     mailtrap.Address{Email: s.fromEmail, Name: fromName},
		To:       []mailtrap.Address{{Email: strings.TrimSpace(input.To)}},
		Subject:  input.Subject,
		Text:     text,
		HTML:     input.HTML,
		Category: defaultCategory,
	})
	if err != nil {
		return nil, err
	}
	return &SendResultDTO{MessageIDs: result.MessageIDs}, nil
}
