package tasks

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"tutorhub-api/core/constants"
)

// SweepNoShowsPayload is intentionally empty; the handler derives "now"
// itself so that delayed deliveries do not sweep against a stale clock.
type SweepNoShowsPayload struct{}

type DispatchNotificationPayload struct {
	NotificationID uuid.UUID `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
	Type           string    `json:"type"`
}

func NewSweepNoShowsTask() (*asynq.Task, error) {
	payload, err := json.Marshal(SweepNoShowsPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskSweepNoShows, payload), nil
}

func NewDispatchNotificationTask(notificationID, userID uuid.UUID, notifType string) (*asynq.Task, error) {
	payload, err := json.Marshal(DispatchNotificationPayload{
		NotificationID: notificationID,
		UserID:         userID,
		Type:           notifType,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskDispatchNotification, payload), nil
}
