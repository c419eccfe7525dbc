package tasks

import (
	"encoding/json"

	"payproof/internal/models"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeTaskSendPaymentNotification = "task:send_payment_notification"
)

// SendPaymentNotificationPayload carries the stored record so the worker
// does not need to read it back from the database.
type SendPaymentNotificationPayload struct {
	Payment models.Payment `json:"payment"`
}

// NewSendPaymentNotificationTask creates a new task for asynq
func NewSendPaymentNotificationTask(payment models.Payment) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(SendPaymentNotificationPayload{Payment: payment})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypeTaskSendPaymentNotification, payloadBytes, asynq.MaxRetry(5)), nil
}
