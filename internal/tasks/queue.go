package tasks

import (
	"context"
	"fmt"

	"payproof/internal/models"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of *asynq.Client used by QueueNotifier.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotifier hands notifications to the worker through asynq.
type QueueNotifier struct {
	client Enqueuer
	queue  string
}

func NewQueueNotifier(client Enqueuer, queue string) *QueueNotifier {
	if queue == "" {
		queue = "default"
	}
	return &QueueNotifier{client: client, queue: queue}
}

func (n *QueueNotifier) Send(ctx context.Context, payment models.Payment) error {
	task, err := NewSendPaymentNotificationTask(payment)
	if err != nil {
		return fmt.Errorf("failed to create notification task: %w", err)
	}

	if _, err := n.client.EnqueueContext(ctx, task, asynq.Queue(n.queue)); err != nil {
		return fmt.Errorf("failed to enqueue notification task: %w", err)
	}
	return nil
}
