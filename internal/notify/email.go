package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"payproof/internal/models"

	"github.com/resend/resend-go/v2"
)

// EmailNotifier delivers notifications through the Resend API.
type EmailNotifier struct {
	client   *resend.Client
	apiKey   string
	from     string
	to       []string
	location *time.Location
}

func NewEmailNotifier(apiKey, from string, to []string, loc *time.Location) (*EmailNotifier, error) {
	if apiKey == "" {
		return nil, errors.New("RESEND_API_KEY is not set")
	}
	if from == "" || len(to) == 0 {
		return nil, errors.New("email sender and recipients are required")
	}

	n := &EmailNotifier{
		apiKey:   apiKey,
		from:     from,
		to:       to,
		location: loc,
	}
	n.client = resend.NewCustomClient(&http.Client{Timeout: 15 * time.Second}, apiKey)
	return n, nil
}

func (n *EmailNotifier) Send(ctx context.Context, p models.Payment) error {
	msg, err := Render(p, n.location)
	if err != nil {
		return err
	}

	sent, err := n.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("notification email %s sent for payment %d", sent.Id, p.ID)
	return nil
}
