package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/mail"

	"event-solution/models"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"
)

// Notifier emails the generated ticket artifact to the requester.
type Notifier interface {
	Send(ctx context.Context, email string, artifact []byte, event *models.Event, request *models.TicketRequest) error
}

// MailNotifier delivers through the app's configured mail client.
type MailNotifier struct {
	app core.App

	senderName    string
	senderAddress string
}

func NewMailNotifier(app core.App, senderName, senderAddress string) *MailNotifier {
	return &MailNotifier{
		app:           app,
		senderName:    senderName,
		senderAddress: senderAddress,
	}
}

func (n *MailNotifier) Send(_ context.Context, email string, artifact []byte, event *models.Event, request *models.TicketRequest) error {
	msg := &mailer.Message{
		From: mail.Address{
			Name:    n.senderName,
			Address: n.senderAddress,
		},
		To:      []mail.Address{{Address: email}},
		Subject: fmt.Sprintf("Your ticket for %s", event.Name),
		HTML: fmt.Sprintf(
			"<p>Dear %s,</p><p>Thank you for your request. Your ticket for <strong>%s</strong> is attached.</p>",
			request.Name, event.Name,
		),
		Attachments: map[string]io.Reader{
			"ticket.png": bytes.NewReader(artifact),
		},
	}

	if err := n.app.NewMailClient().Send(msg); err != nil {
		return fmt.Errorf("send ticket mail: %w", err)
	}

	return nil
}
