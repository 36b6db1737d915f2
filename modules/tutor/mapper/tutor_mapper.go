package mapper

import (
	"tutorhub-api/core/utils"
	"tutorhub-api/modules/tutor/dto"
	"tutorhub-api/modules/tutor/entity"
)

func ToTutorResponse(p *entity.TutorProfile, categories []entity.Category) *dto.TutorResponse {
	resp := &dto.TutorResponse{
		ID:              p.ID.String(),
		UserID:          p.UserID.String(),
		Slug:            p.Slug,
		Headline:        p.Headline,
		Bio:             p.Bio,
		HourlyRateCents: p.HourlyRateCents,
		HourlyRate:      utils.FormatCents(p.HourlyRateCents),
		Currency:        p.Currency,
		IsActive:        p.IsActive,
		RatingAvg:       p.RatingAvg,
		RatingCount:     p.RatingCount,
		CreatedAt:       p.CreatedAt,
	}

	for i := range categories {
		resp.Categories = append(resp.Categories, *ToCategoryResponse(&categories[i]))
	}

	return resp
}

func ToCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}

func ToPaginatedTutorResponse(page *entity.PaginatedTutorEntity) *dto.PaginatedTutorResponse {
	if page == nil {
		return &dto.PaginatedTutorResponse{Items: []dto.TutorResponse{}}
	}

	items := make([]dto.TutorResponse, len(page.Items))
	for i := range page.Items {
		items[i] = *ToTutorResponse(&page.Items[i], nil)
	}

	return &dto.PaginatedTutorResponse{
		Items:      items,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}
