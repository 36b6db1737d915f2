package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"

	coreEntity "tutorhub-api/core/entity"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/params"
	"tutorhub-api/modules/tutor/dto"
	"tutorhub-api/modules/tutor/entity"
)

// fakeTutorRepo is an in-memory stand-in mirroring the repository's
// nil-on-missing and unique-violation behavior.
type fakeTutorRepo struct {
	profiles   map[uuid.UUID]*entity.TutorProfile
	byUser     map[uuid.UUID]uuid.UUID
	bySlug     map[string]uuid.UUID
	categories map[uuid.UUID]*entity.Category
	catBySlug  map[string]uuid.UUID
	assigned   map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeTutorRepo() *fakeTutorRepo {
	return &fakeTutorRepo{
		profiles:   map[uuid.UUID]*entity.TutorProfile{},
		byUser:     map[uuid.UUID]uuid.UUID{},
		bySlug:     map[string]uuid.UUID{},
		categories: map[uuid.UUID]*entity.Category{},
		catBySlug:  map[string]uuid.UUID{},
		assigned:   map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (r *fakeTutorRepo) CreateProfile(_ context.Context, p *entity.TutorProfile) (*entity.TutorProfile, error) {
	if _, dup := r.byUser[p.UserID]; dup {
		return nil, &pq.Error{Code: "23505", Constraint: "tutor_profiles_user_id_key"}
	}
	stored := *p
	stored.ID = uuid.New()
	r.profiles[stored.ID] = &stored
	r.byUser[stored.UserID] = stored.ID
	r.bySlug[stored.Slug] = stored.ID
	out := stored
	return &out, nil
}

func (r *fakeTutorRepo) GetProfileByID(_ context.Context, id uuid.UUID) (*entity.TutorProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (r *fakeTutorRepo) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*entity.TutorProfile, error) {
	id, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	out := *r.profiles[id]
	return &out, nil
}

func (r *fakeTutorRepo) GetProfileBySlug(_ context.Context, slug string) (*entity.TutorProfile, error) {
	id, ok := r.bySlug[slug]
	if !ok {
		return nil, nil
	}
	out := *r.profiles[id]
	return &out, nil
}

func (r *fakeTutorRepo) UpdateProfile(_ context.Context, p *entity.TutorProfile) error {
	stored, ok := r.profiles[p.ID]
	if !ok {
		return nil
	}
	stored.Headline = p.Headline
	stored.Bio = p.Bio
	stored.HourlyRateCents = p.HourlyRateCents
	stored.Currency = p.Currency
	stored.IsActive = p.IsActive
	return nil
}

func (r *fakeTutorRepo) Search(_ context.Context, filters entity.SearchFilters, qp params.QueryParams) (*entity.PaginatedTutorEntity, error) {
	var items []entity.TutorProfile
	for _, p := range r.profiles {
		if !p.IsActive {
			continue
		}
		if filters.MinRateCents > 0 && p.HourlyRateCents < filters.MinRateCents {
			continue
		}
		if filters.MaxRateCents > 0 && p.HourlyRateCents > filters.MaxRateCents {
			continue
		}
		items = append(items, *p)
	}
	return &entity.PaginatedTutorEntity{
		Items:      items,
		TotalItems: len(items),
		TotalPages: coreEntity.TotalPagesFor(len(items), qp.PageSize),
		PageNumber: qp.PageNumber,
		PageSize:   qp.PageSize,
	}, nil
}

func (r *fakeTutorRepo) ApplyRating(_ context.Context, tutorUserID uuid.UUID, rating int) error {
	id, ok := r.byUser[tutorUserID]
	if !ok {
		return nil
	}
	p := r.profiles[id]
	total := p.RatingAvg*float64(p.RatingCount) + float64(rating)
	p.RatingCount++
	p.RatingAvg = total / float64(p.RatingCount)
	return nil
}

func (r *fakeTutorRepo) CreateCategory(_ context.Context, c *entity.Category) (*entity.Category, error) {
	if _, dup := r.catBySlug[c.Slug]; dup {
		return nil, &pq.Error{Code: "23505", Constraint: "categories_slug_key"}
	}
	stored := *c
	stored.ID = uuid.New()
	r.categories[stored.ID] = &stored
	r.catBySlug[stored.Slug] = stored.ID
	out := stored
	return &out, nil
}

func (r *fakeTutorRepo) ListCategories(_ context.Context) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeTutorRepo) GetCategoryByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *fakeTutorRepo) UpdateCategory(_ context.Context, c *entity.Category) error {
	stored, ok := r.categories[c.ID]
	if !ok {
		return nil
	}
	delete(r.catBySlug, stored.Slug)
	stored.Name = c.Name
	stored.Slug = c.Slug
	stored.Description = c.Description
	r.catBySlug[stored.Slug] = stored.ID
	return nil
}

func (r *fakeTutorRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	if c, ok := r.categories[id]; ok {
		delete(r.catBySlug, c.Slug)
		delete(r.categories, id)
	}
	return nil
}

func (r *fakeTutorRepo) AssignCategory(_ context.Context, tutorProfileID, categoryID uuid.UUID) error {
	if r.assigned[tutorProfileID] == nil {
		r.assigned[tutorProfileID] = map[uuid.UUID]bool{}
	}
	r.assigned[tutorProfileID][categoryID] = true
	return nil
}

func (r *fakeTutorRepo) RemoveCategory(_ context.Context, tutorProfileID, categoryID uuid.UUID) error {
	delete(r.assigned[tutorProfileID], categoryID)
	return nil
}

func (r *fakeTutorRepo) ListCategoriesForTutor(_ context.Context, tutorProfileID uuid.UUID) ([]entity.Category, error) {
	var out []entity.Category
	for id := range r.assigned[tutorProfileID] {
		if c, ok := r.categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func wantCode(t *testing.T, appErr *errors.AppError, code errors.ErrorCode) {
	t.Helper()
	if appErr == nil {
		t.Fatalf("expected error %s, got nil", code)
	}
	if appErr.Code != code {
		t.Fatalf("error code = %s, want %s", appErr.Code, code)
	}
}

func upsertReq(headline string, rate int64) *dto.UpsertProfileRequest {
	return &dto.UpsertProfileRequest{
		Headline:        headline,
		Bio:             "I teach things",
		HourlyRateCents: rate,
	}
}

// ===================== Profiles =====================

func TestUpsertMyProfileCreatesThenUpdates(t *testing.T) {
	userID := uuid.New()
	repo := newFakeTutorRepo()
	svc := NewTutorService(repo, nil)

	created, appErr := svc.UpsertMyProfile(context.Background(), userID, upsertReq("Algebra tutor", 4000))
	if appErr != nil {
		t.Fatalf("create failed: %v", appErr)
	}
	if created.Slug == "" {
		t.Fatal("slug not assigned")
	}
	if created.Currency != "USD" {
		t.Errorf("currency = %s, want USD default", created.Currency)
	}
	if !created.IsActive {
		t.Error("profile must default to active")
	}
	if created.HourlyRate != "40.00" {
		t.Errorf("hourly rate = %s, want 40.00", created.HourlyRate)
	}

	updated, appErr := svc.UpsertMyProfile(context.Background(), userID, upsertReq("Calculus tutor", 5500))
	if appErr != nil {
		t.Fatalf("update failed: %v", appErr)
	}
	if updated.Headline != "Calculus tutor" {
		t.Errorf("headline = %s, not updated", updated.Headline)
	}
	if updated.Slug != created.Slug {
		t.Errorf("slug changed from %s to %s on update", created.Slug, updated.Slug)
	}
}

func TestGetTutorBySlugHidesInactive(t *testing.T) {
	userID := uuid.New()
	repo := newFakeTutorRepo()
	svc := NewTutorService(repo, nil)

	created, _ := svc.UpsertMyProfile(context.Background(), userID, upsertReq("Algebra tutor", 4000))

	if _, appErr := svc.GetTutorBySlug(context.Background(), created.Slug); appErr != nil {
		t.Fatalf("active profile not found: %v", appErr)
	}

	inactive := false
	req := upsertReq("Algebra tutor", 4000)
	req.IsActive = &inactive
	if _, appErr := svc.UpsertMyProfile(context.Background(), userID, req); appErr != nil {
		t.Fatalf("deactivate failed: %v", appErr)
	}

	_, appErr := svc.GetTutorBySlug(context.Background(), created.Slug)
	wantCode(t, appErr, errors.ErrNotFound)
}

func TestGetMyProfileMissing(t *testing.T) {
	svc := NewTutorService(newFakeTutorRepo(), nil)
	_, appErr := svc.GetMyProfile(context.Background(), uuid.New())
	wantCode(t, appErr, errors.ErrNotFound)
}

func TestSearchTutorsFiltersByRate(t *testing.T) {
	repo := newFakeTutorRepo()
	svc := NewTutorService(repo, nil)

	svc.UpsertMyProfile(context.Background(), uuid.New(), upsertReq("Cheap tutor", 2000))
	svc.UpsertMyProfile(context.Background(), uuid.New(), upsertReq("Pricey tutor", 9000))

	qp := params.QueryParams{PageNumber: 1, PageSize: 10}
	page, appErr := svc.SearchTutors(context.Background(), entity.SearchFilters{MinRateCents: 5000}, qp)
	if appErr != nil {
		t.Fatalf("SearchTutors failed: %v", appErr)
	}
	if page.TotalItems != 1 {
		t.Fatalf("total = %d, want 1", page.TotalItems)
	}
	if page.Items[0].Headline != "Pricey tutor" {
		t.Errorf("result = %s, want Pricey tutor", page.Items[0].Headline)
	}
}

// ===================== Categories =====================

func TestCategoryCatalog(t *testing.T) {
	repo := newFakeTutorRepo()
	svc := NewTutorService(repo, nil)

	created, appErr := svc.CreateCategory(context.Background(), &dto.CategoryRequest{Name: "Test Prep"})
	if appErr != nil {
		t.Fatalf("CreateCategory failed: %v", appErr)
	}
	if created.Slug != "test-prep" {
		t.Errorf("slug = %s, want test-prep", created.Slug)
	}

	_, appErr = svc.CreateCategory(context.Background(), &dto.CategoryRequest{Name: "Test Prep"})
	wantCode(t, appErr, errors.ErrAlreadyExists)

	updated, appErr := svc.UpdateCategory(context.Background(), uuid.MustParse(created.ID),
		&dto.CategoryRequest{Name: "Mathematics"})
	if appErr != nil {
		t.Fatalf("UpdateCategory failed: %v", appErr)
	}
	if updated.Slug != "mathematics" {
		t.Errorf("slug = %s, want mathematics", updated.Slug)
	}

	_, appErr = svc.UpdateCategory(context.Background(), uuid.New(), &dto.CategoryRequest{Name: "Physics"})
	wantCode(t, appErr, errors.ErrNotFound)

	if appErr = svc.DeleteCategory(context.Background(), uuid.MustParse(created.ID)); appErr != nil {
		t.Fatalf("DeleteCategory failed: %v", appErr)
	}
	wantCode(t, svc.DeleteCategory(context.Background(), uuid.MustParse(created.ID)), errors.ErrNotFound)
}

func TestAssignCategory(t *testing.T) {
	userID := uuid.New()
	repo := newFakeTutorRepo()
	svc := NewTutorService(repo, nil)

	category, _ := svc.CreateCategory(context.Background(), &dto.CategoryRequest{Name: "Math"})

	// No profile yet.
	appErr := svc.AssignMyCategory(context.Background(), userID, &dto.AssignCategoryRequest{CategoryID: category.ID})
	wantCode(t, appErr, errors.ErrNotFound)

	svc.UpsertMyProfile(context.Background(), userID, upsertReq("Algebra tutor", 4000))

	if appErr = svc.AssignMyCategory(context.Background(), userID, &dto.AssignCategoryRequest{CategoryID: category.ID}); appErr != nil {
		t.Fatalf("AssignMyCategory failed: %v", appErr)
	}

	profile, appErr := svc.GetMyProfile(context.Background(), userID)
	if appErr != nil {
		t.Fatalf("GetMyProfile failed: %v", appErr)
	}
	if len(profile.Categories) != 1 || profile.Categories[0].Name != "Math" {
		t.Errorf("categories = %+v, want Math", profile.Categories)
	}

	// Unknown category.
	appErr = svc.AssignMyCategory(context.Background(), userID, &dto.AssignCategoryRequest{CategoryID: uuid.New().String()})
	wantCode(t, appErr, errors.ErrNotFound)

	if appErr = svc.RemoveMyCategory(context.Background(), userID, uuid.MustParse(category.ID)); appErr != nil {
		t.Fatalf("RemoveMyCategory failed: %v", appErr)
	}
	profile, _ = svc.GetMyProfile(context.Background(), userID)
	if len(profile.Categories) != 0 {
		t.Errorf("categories = %+v, want none", profile.Categories)
	}
}
