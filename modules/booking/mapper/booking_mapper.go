package mapper

import (
	"tutorhub-api/core/utils"
	"tutorhub-api/modules/booking/dto"
	"tutorhub-api/modules/booking/entity"
)

func ToBookingResponse(b *entity.Booking) *dto.BookingResponse {
	resp := &dto.BookingResponse{
		ID:              b.ID.String(),
		Reference:       b.Reference,
		StudentID:       b.StudentID.String(),
		TutorID:         b.TutorID.String(),
		Subject:         b.Subject,
		SessionDate:     utils.FormatDate(b.SessionDate),
		StartTime:       utils.FormatTimeOfDay(b.StartMinute),
		EndTime:         utils.FormatTimeOfDay(b.EndMinute),
		DurationMinutes: b.DurationMinutes,
		PriceCents:      b.PriceCents,
		Price:           utils.FormatCents(b.PriceCents),
		Currency:        b.Currency,
		Status:          string(b.Status),
		StudentNotes:    b.StudentNotes,
		TutorNotes:      b.TutorNotes,
		CancelledAt:     b.CancelledAt,
		CreatedAt:       b.CreatedAt,
	}

	if b.CancelledBy != nil {
		resp.CancelledBy = b.CancelledBy.String()
	}
	if b.CancelReason != nil {
		resp.CancelReason = *b.CancelReason
	}

	return resp
}

func ToPaginatedBookingResponse(page *entity.PaginatedBookingEntity) *dto.PaginatedBookingResponse {
	if page == nil {
		return &dto.PaginatedBookingResponse{Items: []dto.BookingResponse{}}
	}

	items := make([]dto.BookingResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToBookingResponse(&page.Items[i])
	}

	return &dto.PaginatedBookingResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
