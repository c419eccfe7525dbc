// Package notify renders and delivers payment notifications.
package notify

import (
	"context"
	"errors"
	"log"
	"time"

	"payproof/internal/models"
)

// Sender is implemented by every notifier in this package.
type Sender interface {
	Send(ctx context.Context, p models.Payment) error
}

// LogNotifier writes the rendered text to the operator log.
type LogNotifier struct {
	Location *time.Location
	Logger   *log.Logger
}

func (n LogNotifier) Send(ctx context.Context, p models.Payment) error {
	msg, err := Render(p, n.Location)
	if err != nil {
		return err
	}

	logger := n.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("%s\n%s", msg.Subject, msg.Text)
	return nil
}

// Multi fans out to every sender and joins their errors.
type Multi []Sender

func (m Multi) Send(ctx context.Context, p models.Payment) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
