package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/devportfolio/portfolio-backend/models"
)

// notifyTimeout bounds a single notification, independent of the request
// that triggered it.
const notifyTimeout = 10 * time.Second

// EmailSender is the part of the Resend client the notifier uses.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ContactNotifier emails the portfolio owner when someone leaves a contact.
type ContactNotifier struct {
	sender EmailSender
	from   string
	to     string
	logger zerolog.Logger
}

// NewContactNotifier builds a notifier backed by the Resend API.
func NewContactNotifier(apiKey, from, to string, logger zerolog.Logger) *ContactNotifier {
	return NewContactNotifierWithSender(resend.NewClient(apiKey).Emails, from, to, logger)
}

func NewContactNotifierWithSender(sender EmailSender, from, to string, logger zerolog.Logger) *ContactNotifier {
	return &ContactNotifier{
		sender: sender,
		from:   from,
		to:     to,
		logger: logger.With().Str("service", "contactNotifier").Logger(),
	}
}

// ContactCreated sends the notification in the background. The request
// context is only used for its values so the email outlives the response.
// Failures are logged and never reach the caller.
func (n *ContactNotifier) ContactCreated(ctx context.Context, contact models.Contact) {
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := n.Send(ctx, contact); err != nil {
			n.logger.Error().Err(err).Uint("contactId", contact.ID).Msg("Failed to send contact notification")
		}
	}()
}

// Send emails a single contact synchronously.
func (n *ContactNotifier) Send(ctx context.Context, contact models.Contact) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{n.to},
		ReplyTo: contact.Email,
		Subject: fmt.Sprintf("Novo contato de %s", contact.Name),
		Html:    contactEmailBody(contact),
		Text:    fmt.Sprintf("%s <%s>\n\n%s", contact.Name, contact.Email, contact.Message),
	}

	resp, err := n.sender.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Info().Str("emailId", resp.Id).Uint("contactId", contact.ID).Msg("Successfully sent email via Resend")
	return nil
}

func contactEmailBody(contact models.Contact) string {
	message := strings.ReplaceAll(html.EscapeString(contact.Message), "\n", "<br>")
	return fmt.Sprintf(
		"<p><strong>%s</strong> &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(contact.Name),
		html.EscapeString(contact.Email),
		message,
	)
}
