package mailer

import (
	"context"
	"testing"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	"github.com/brickshare-es/brickshare-backend/pkg/mailtrap"
)

type stubMailClient struct {
	result   *mailtrap.SendResult
	err      error
	messages []mailtrap.Message
}

func (s *stubMailClient) Send(ctx context.Context, msg mailtrap.Message) (*mailtrap.SendResult, error) {
	s.messages = append(s.messages, msg)
	return s.result, s.err
}

func TestSendAppliesDefaults(t *testing.T) {
	client := &stubMailClient{result: &mailtrap.SendResult{Success: true, MessageIDs: []string{"msg-1"}}}
	svc, err := NewService(ServiceParams{Client: client, FromEmail: "info@brickshare.es"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Send(context.Background(), SendInput{
		To:      "socio@example.com",
		Subject: "Tu set está en camino",
		HTML:    "<p>El envío sale hoy.</p>",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(result.MessageIDs) != 1 || result.MessageIDs[0] != "msg-1" {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(client.messages) != 1 {
		t.Fatalf("expected one send, got %d", len(client.messages))
	}
	msg := client.messages[0]
	if msg.From.Email != "info@brickshare.es" || msg.From.Name != "Brickshare" {
		t.Fatalf("unexpected from %+v", msg.From)
	}
	if msg.Text != "Brickshare Notification" {
		t.Fatalf("expected default text, got %q", msg.Text)
	}
	if msg.Category != "Notification" {
		t.Fatalf("expected category, got %q", msg.Category)
	}
}

func TestSendKeepsProvidedOverrides(t *testing.T) {
	client := &stubMailClient{result: &mailtrap.SendResult{Success: true}}
	svc, err := NewService(ServiceParams{Client: client, FromEmail: "info@brickshare.es"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Send(context.Background(), SendInput{
		To:       "socio@example.com",
		Subject:  "Recordatorio",
		HTML:     "<p>Hola</p>",
		Text:     "Hola",
		FromName: "Equipo Brickshare",
	}); err != nil {
		t.Fatalf("send: %v", err)
	}
	msg := client.messages[0]
	if msg.From.Name != "Equipo Brickshare" || msg.Text != "Hola" {
		t.Fatalf("expected overrides preserved, got %+v", msg)
	}
}

func TestSendFailsFastWhenNotConfigured(t *testing.T) {
	svc, err := NewService(ServiceParams{Client: nil, FromEmail: "info@brickshare.es"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Send(context.Background(), SendInput{
		To:      "socio@example.com",
		Subject: "Hola",
		HTML:    "<p>Hola</p>",
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSendValidatesInput(t *testing.T) {
	client := &stubMailClient{result: &mailtrap.SendResult{}}
	svc, err := NewService(ServiceParams{Client: client, FromEmail: "info@brickshare.es"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cases := []struct {
		name  string
		input SendInput
	}{
		{"missing recipient", SendInput{Subject: "s", HTML: "<p>h</p>"}},
		{"missing subject", SendInput{To: "a@b.c", HTML: "<p>h</p>"}},
		{"missing html", SendInput{To: "a@b.c", Subject: "s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Send(context.Background(), tc.input)
			appErr := pkgerrors.As(err)
			if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if len(client.messages) != 0 {
		t.Fatal("provider must not be called for invalid input")
	}
}
