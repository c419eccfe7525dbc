package payments

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"payproof/internal/models"
)

// ObjectStore stores proof files and returns a URL that resolves to them.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// RecordStore persists payment rows. Insert fills ID and CreatedAt.
type RecordStore interface {
	Insert(ctx context.Context, payment *models.Payment) error
	ListAll(ctx context.Context) ([]models.Payment, error)
}

// Notifier announces a stored payment.
type Notifier interface {
	Send(ctx context.Context, payment models.Payment) error
}

// Service runs the submission workflow and the listing.
type Service struct {
	objects       ObjectStore
	records       RecordStore
	notifier      Notifier
	now           func() time.Time
	notifyTimeout time.Duration
}

type Option func(*Service)

// WithClock overrides the time source used for object keys.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifyTimeout bounds the notification step.
func WithNotifyTimeout(d time.Duration) Option {
	return func(s *Service) { s.notifyTimeout = d }
}

func NewService(objects ObjectStore, records RecordStore, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		objects:       objects,
		records:       records,
		notifier:      notifier,
		now:           time.Now,
		notifyTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores the proof, persists the record and then notifies. Only the
// first two steps decide the result: a notification failure is logged and
// swallowed. A persistence failure leaves the stored object orphaned.
func (s *Service) Submit(ctx context.Context, draft Draft, body io.Reader) (*models.Payment, error) {
	key := NewObjectKey(s.now(), draft.File.Filename)

	proofURL, err := s.objects.Put(ctx, key, body, draft.File.Size, draft.File.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	payment := &models.Payment{
		Name:          draft.Name,
		PhoneNumber:   draft.PhoneNumber,
		PaymentMethod: draft.PaymentMethod,
		Reason:        draft.Reason,
		ProofURL:      proofURL,
	}
	if err := s.records.Insert(ctx, payment); err != nil {
		log.Printf("WARN: orphaned proof object %s: %v", key, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	s.notify(ctx, *payment)

	return payment, nil
}

func (s *Service) notify(ctx context.Context, payment models.Payment) {
	if s.notifier == nil {
		return
	}

	// the record is already stored, a client disconnect must not cancel this
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	// senders that ignore ctx are abandoned at the deadline
	done := make(chan error, 1)
	go func() { done <- s.notifier.Send(ctx, payment) }()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("WARN: %v for payment %d: %v", ErrNotifyFailure, payment.ID, err)
		}
	case <-ctx.Done():
		log.Printf("WARN: %v for payment %d: timed out after %s", ErrNotifyFailure, payment.ID, s.notifyTimeout)
	}
}

// List returns every payment, newest first.
func (s *Service) List(ctx context.Context) ([]models.Payment, error) {
	payments, err := s.records.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return payments, nil
}
