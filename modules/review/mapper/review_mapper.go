package mapper

import (
	"tutorhub-api/modules/review/dto"
	"tutorhub-api/modules/review/entity"
)

func ToReviewResponse(r *entity.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:          r.ID.String(),
		BookingID:   r.BookingID.String(),
		StudentID:   r.StudentID.String(),
		TutorID:     r.TutorID.String(),
		Rating:      r.Rating,
		Comment:     r.Comment,
		RespondedAt: r.RespondedAt,
		IsVisible:   r.IsVisible,
		CreatedAt:   r.CreatedAt,
	}

	if r.Response != nil {
		resp.Response = *r.Response
	}

	return resp
}

func ToPaginatedReviewResponse(page *entity.PaginatedReviewEntity) *dto.PaginatedReviewResponse {
	if page == nil {
		return &dto.PaginatedReviewResponse{Items: []dto.ReviewResponse{}}
	}

	items := make([]dto.ReviewResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToReviewResponse(&page.Items[i])
	}

	return &dto.PaginatedReviewResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
