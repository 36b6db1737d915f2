package mapper

import (
	"tutorhub-api/modules/notification/dto"
	"tutorhub-api/modules/notification/entity"
)

func ToNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Data:      map[string]any(n.Data),
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func ToPaginatedNotificationResponse(page *entity.PaginatedNotificationEntity) *dto.PaginatedNotificationResponse {
	if page == nil {
		return &dto.PaginatedNotificationResponse{Items: []dto.NotificationResponse{}}
	}

	items := make([]dto.NotificationResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToNotificationResponse(&page.Items[i])
	}

	return &dto.PaginatedNotificationResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
