package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"payproof/internal/notify"

	"github.com/hibiken/asynq"
)

// TaskProcessor holds dependencies for our task handlers
type TaskProcessor struct {
	sender notify.Sender
}

// NewTaskProcessor creates a new TaskProcessor
func NewTaskProcessor(sender notify.Sender) *TaskProcessor {
	return &TaskProcessor{sender: sender}
}

func (p *TaskProcessor) HandleSendPaymentNotificationTask(ctx context.Context, t *asynq.Task) error {
	var payload SendPaymentNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	if payload.Payment.ID == 0 {
		return fmt.Errorf("payload has no payment id: %w", asynq.SkipRetry)
	}

	log.Printf("Sending notification for payment %d", payload.Payment.ID)

	if err := p.sender.Send(ctx, payload.Payment); err != nil {
		return fmt.Errorf("failed to send notification for payment %d: %w", payload.Payment.ID, err)
	}

	return nil
}
