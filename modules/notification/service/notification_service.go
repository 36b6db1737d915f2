package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/logger"
	"tutorhub-api/core/params"
	"tutorhub-api/core/tasks"
	"tutorhub-api/modules/notification/dto"
	"tutorhub-api/modules/notification/entity"
	"tutorhub-api/modules/notification/mapper"
	"tutorhub-api/modules/notification/repository"
)

// NotificationService persists in-app notifications and hands delivery
// off to the background worker.
type NotificationService struct {
	repo   repository.NotificationRepositoryInterface
	client *asynq.Client
}

// NotificationServiceInterface defines the service contract. Notify is
// the producer side used by the booking and review modules.
type NotificationServiceInterface interface {
	Notify(ctx context.Context, userID uuid.UUID, notifType, title, message string, data map[string]any)
	GetMyNotifications(ctx context.Context, userID uuid.UUID, qp params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError)
	MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError
	CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError)
}

func NewNotificationService(repo repository.NotificationRepositoryInterface, client *asynq.Client) NotificationServiceInterface {
	return &NotificationService{repo: repo, client: client}
}

// Notify records a notification row and enqueues its dispatch. Best
// effort by design: a lifecycle transition must never fail because the
// notification write or the queue is down.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, notifType, title, message string, data map[string]any) {
	n := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notifType,
		Data:    entity.JSONB(data),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		logger.Warn("NotificationService:Notify:CreateFailed",
			"user_id", userID, "type", notifType, "error", err)
		return
	}

	if s.client == nil {
		return
	}

	task, err := tasks.NewDispatchNotificationTask(n.ID, userID, notifType)
	if err != nil {
		logger.Warn("NotificationService:Notify:TaskBuildFailed", "error", err)
		return
	}
	if _, err = s.client.EnqueueContext(ctx, task, asynq.Queue(constants.QueueDefault)); err != nil {
		logger.Warn("NotificationService:Notify:EnqueueFailed",
			"notification_id", n.ID, "error", err)
	}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, qp params.QueryParams) (*dto.PaginatedNotificationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	page, err := s.repo.ListByUser(ctx, userID, qp)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to load notifications", err)
	}
	return mapper.ToPaginatedNotificationResponse(page), nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.repo.MarkAsRead(ctx, userID, ids); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if err := s.repo.MarkAllAsRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrUpdateFailed, "Failed to mark notifications as read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrGetFailed, "Failed to count unread notifications", err)
	}
	return count, nil
}
