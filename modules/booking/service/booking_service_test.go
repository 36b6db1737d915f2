package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	coreEntity "tutorhub-api/core/entity"
	"tutorhub-api/core/errors"
	"tutorhub-api/core/params"
	availEntity "tutorhub-api/modules/availability/entity"
	"tutorhub-api/modules/booking/dto"
	"tutorhub-api/modules/booking/entity"
	notifDto "tutorhub-api/modules/notification/dto"
	notifEntity "tutorhub-api/modules/notification/entity"
	tutorEntity "tutorhub-api/modules/tutor/entity"
	tutorRepository "tutorhub-api/modules/tutor/repository"
)

// ===================== Fakes =====================

type fakeBookingRepo struct {
	bookings  map[uuid.UUID]*entity.Booking
	active    []entity.Booking
	swept     []entity.Booking
	conflict  bool
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}}
}

func (r *fakeBookingRepo) CreateWithConflictScan(_ context.Context, b *entity.Booking) (*entity.Booking, bool, error) {
	if r.conflict {
		return nil, true, nil
	}
	if r.createErr != nil {
		return nil, false, r.createErr
	}
	stored := *b
	stored.ID = uuid.New()
	r.bookings[stored.ID] = &stored
	out := stored
	return &out, false, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	out := *b
	return &out, nil
}

func (r *fakeBookingRepo) ListActiveByTutorDate(_ context.Context, _ uuid.UUID, _ time.Time) ([]entity.Booking, error) {
	return r.active, nil
}

func (r *fakeBookingRepo) ListByActor(_ context.Context, _ uuid.UUID, _ string, _ entity.BookingStatus, qp params.QueryParams) (*entity.PaginatedBookingEntity, error) {
	return &entity.PaginatedBookingEntity{PageNumber: qp.PageNumber, PageSize: qp.PageSize}, nil
}

func (r *fakeBookingRepo) Transition(_ context.Context, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus, tutorNotes *string) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || !statusIn(b.Status, from) {
		return nil, nil
	}
	b.Status = to
	if tutorNotes != nil {
		b.TutorNotes = *tutorNotes
	}
	out := *b
	return &out, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id uuid.UUID, from []entity.BookingStatus, cancelledBy uuid.UUID, reason *string) (*entity.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || !statusIn(b.Status, from) {
		return nil, nil
	}
	now := time.Now()
	b.Status = entity.StatusCancelled
	b.CancelledBy = &cancelledBy
	b.CancelReason = reason
	b.CancelledAt = &now
	out := *b
	return &out, nil
}

func (r *fakeBookingRepo) SweepNoShows(_ context.Context, _ time.Time, _ int) ([]entity.Booking, error) {
	return r.swept, nil
}

func statusIn(s entity.BookingStatus, set []entity.BookingStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

type fakeAvailRepo struct {
	slots []availEntity.AvailabilitySlot
}

func (r *fakeAvailRepo) Create(_ context.Context, slot *availEntity.AvailabilitySlot) (*availEntity.AvailabilitySlot, error) {
	return slot, nil
}

func (r *fakeAvailRepo) GetByID(_ context.Context, _ uuid.UUID) (*availEntity.AvailabilitySlot, error) {
	return nil, nil
}

func (r *fakeAvailRepo) ListByTutor(_ context.Context, _ uuid.UUID) ([]availEntity.AvailabilitySlot, error) {
	return r.slots, nil
}

func (r *fakeAvailRepo) ListActiveByTutorDay(_ context.Context, _ uuid.UUID, day availEntity.DayOfWeek) ([]availEntity.AvailabilitySlot, error) {
	var out []availEntity.AvailabilitySlot
	for _, s := range r.slots {
		if s.DayOfWeek == day && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeAvailRepo) Toggle(_ context.Context, _ uuid.UUID) (*availEntity.AvailabilitySlot, error) {
	return nil, nil
}

func (r *fakeAvailRepo) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

// fakeTutorRepo overrides the one profile lookup the booking service
// uses; the embedded interface panics on anything else.
type fakeTutorRepo struct {
	tutorRepository.TutorRepositoryInterface
	profile *tutorEntity.TutorProfile
}

func (r *fakeTutorRepo) GetProfileByUserID(_ context.Context, _ uuid.UUID) (*tutorEntity.TutorProfile, error) {
	return r.profile, nil
}

type sentNotification struct {
	userID    uuid.UUID
	notifType string
}

type fakeNotifier struct {
	sent []sentNotification
}

func (n *fakeNotifier) Notify(_ context.Context, userID uuid.UUID, notifType, _, _ string, _ map[string]any) {
	n.sent = append(n.sent, sentNotification{userID: userID, notifType: notifType})
}

func (n *fakeNotifier) GetMyNotifications(_ context.Context, _ uuid.UUID, _ params.QueryParams) (*notifDto.PaginatedNotificationResponse, *errors.AppError) {
	return nil, nil
}

func (n *fakeNotifier) MarkAsRead(_ context.Context, _ uuid.UUID, _ []string) *errors.AppError {
	return nil
}

func (n *fakeNotifier) MarkAllAsRead(_ context.Context, _ uuid.UUID) *errors.AppError {
	return nil
}

func (n *fakeNotifier) CountUnread(_ context.Context, _ uuid.UUID) (int, *errors.AppError) {
	return 0, nil
}

// ===================== Helpers =====================

// 2026-03-09 is a Monday. The fixed clock sits a week earlier so the
// requested session is safely in the future.
const testSessionDate = "2026-03-09"

var testNow = time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

func activeProfile(tutorID uuid.UUID, rateCents int64) *tutorEntity.TutorProfile {
	return &tutorEntity.TutorProfile{
		UserID:          tutorID,
		Slug:            "test-tutor",
		Headline:        "Algebra tutor",
		HourlyRateCents: rateCents,
		Currency:        "USD",
		IsActive:        true,
		BaseEntity:      coreEntity.BaseEntity{ID: uuid.New()},
	}
}

func mondaySlot(tutorID uuid.UUID, start, end int) availEntity.AvailabilitySlot {
	return availEntity.AvailabilitySlot{
		TutorID:     tutorID,
		DayOfWeek:   availEntity.DayMonday,
		StartMinute: start,
		EndMinute:   end,
		IsActive:    true,
		BaseEntity:  coreEntity.BaseEntity{ID: uuid.New()},
	}
}

func newTestService(repo *fakeBookingRepo, slots []availEntity.AvailabilitySlot, profile *tutorEntity.TutorProfile) (*BookingService, *fakeNotifier) {
	notifier := &fakeNotifier{}
	svc := &BookingService{
		repo:     repo,
		slots:    &fakeAvailRepo{slots: slots},
		tutors:   &fakeTutorRepo{profile: profile},
		notifier: notifier,
		loc:      time.UTC,
		now:      func() time.Time { return testNow },
	}
	return svc, notifier
}

func seedBooking(repo *fakeBookingRepo, studentID, tutorID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	sessionDate := time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	b := &entity.Booking{
		Reference:       "BK-test001",
		StudentID:       studentID,
		TutorID:         tutorID,
		Subject:         "Algebra",
		SessionDate:     sessionDate,
		StartMinute:     10 * 60,
		EndMinute:       11 * 60,
		DurationMinutes: 60,
		PriceCents:      4000,
		Currency:        "USD",
		Status:          status,
		BaseEntity:      coreEntity.BaseEntity{ID: uuid.New()},
	}
	repo.bookings[b.ID] = b
	return b
}

func createReq(tutorID uuid.UUID, start, end string) *dto.CreateBookingRequest {
	return &dto.CreateBookingRequest{
		TutorID:     tutorID.String(),
		Subject:     "Algebra",
		SessionDate: testSessionDate,
		StartTime:   start,
		EndTime:     end,
	}
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

// ===================== CreateBooking =====================

func TestCreateBookingSuccess(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	svc, notifier := newTestService(repo, []availEntity.AvailabilitySlot{
		mondaySlot(tutorID, 9*60, 17*60),
	}, activeProfile(tutorID, 4000))

	resp, appErr := svc.CreateBooking(context.Background(), studentID, createReq(tutorID, "10:00", "11:00"))
	if appErr != nil {
		t.Fatalf("CreateBooking failed: %v", appErr)
	}

	if resp.Status != string(entity.StatusPending) {
		t.Errorf("status = %s, want pending", resp.Status)
	}
	if resp.DurationMinutes != 60 {
		t.Errorf("duration = %d, want 60", resp.DurationMinutes)
	}
	if resp.PriceCents != 4000 {
		t.Errorf("price_cents = %d, want 4000", resp.PriceCents)
	}
	if resp.Price != "40.00" {
		t.Errorf("price = %s, want 40.00", resp.Price)
	}
	if resp.Reference == "" {
		t.Error("reference not assigned")
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(notifier.sent))
	}
	if notifier.sent[0].userID != tutorID || notifier.sent[0].notifType != notifEntity.TypeBookingRequested {
		t.Errorf("notification = %+v, want booking_requested to tutor", notifier.sent[0])
	}
}

func TestCreateBookingSelfBooking(t *testing.T) {
	userID := uuid.New()
	svc, _ := newTestService(newFakeBookingRepo(), nil, activeProfile(userID, 4000))

	_, appErr := svc.CreateBooking(context.Background(), userID, createReq(userID, "10:00", "11:00"))
	wantCode(t, appErr, errors.ErrInvalidInput)
}

func TestCreateBookingInactiveTutor(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	profile := activeProfile(tutorID, 4000)
	profile.IsActive = false
	svc, _ := newTestService(newFakeBookingRepo(), nil, profile)

	_, appErr := svc.CreateBooking(context.Background(), studentID, createReq(tutorID, "10:00", "11:00"))
	wantCode(t, appErr, errors.ErrNotFound)
}

func TestCreateBookingPastDate(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	svc, _ := newTestService(newFakeBookingRepo(), []availEntity.AvailabilitySlot{
		mondaySlot(tutorID, 9*60, 17*60),
	}, activeProfile(tutorID, 4000))

	req := createReq(tutorID, "10:00", "11:00")
	req.SessionDate = "2026-02-23"
	_, appErr := svc.CreateBooking(context.Background(), studentID, req)
	wantCode(t, appErr, errors.ErrPastDate)
}

func TestCreateBookingInvertedWindow(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	svc, _ := newTestService(newFakeBookingRepo(), []availEntity.AvailabilitySlot{
		mondaySlot(tutorID, 9*60, 17*60),
	}, activeProfile(tutorID, 4000))

	_, appErr := svc.CreateBooking(context.Background(), studentID, createReq(tutorID, "11:00", "10:00"))
	wantCode(t, appErr, errors.ErrInvalidRange)
}

func TestCreateBookingOutsideAvailability(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	svc, _ := newTestService(newFakeBookingRepo(), []availEntity.AvailabilitySlot{
		mondaySlot(tutorID, 9*60, 17*60),
	}, activeProfile(tutorID, 4000))

	// Spills one hour past the end of the availability window.
	_, appErr := svc.CreateBooking(context.Background(), studentID, createReq(tutorID, "16:00", "18:00"))
	wantCode(t, appErr, errors.ErrOutsideAvailability)
}

func TestCreateBookingTimeConflict(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	repo.conflict = true
	svc, notifier := newTestService(repo, []availEntity.AvailabilitySlot{
		mondaySlot(tutorID, 9*60, 17*60),
	}, activeProfile(tutorID, 4000))

	_, appErr := svc.CreateBooking(context.Background(), studentID, createReq(tutorID, "10:00", "11:00"))
	wantCode(t, appErr, errors.ErrTimeConflict)

	if len(notifier.sent) != 0 {
		t.Errorf("conflicting request must not notify, sent %d", len(notifier.sent))
	}
}

func TestCreateBookingLosesInsertRace(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	repo.createErr = &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"}
	svc, _ := newTestService(repo, []availEntity.AvailabilitySlot{
		mondaySlot(tutorID, 9*60, 17*60),
	}, activeProfile(tutorID, 4000))

	_, appErr := svc.CreateBooking(context.Background(), studentID, createReq(tutorID, "10:00", "11:00"))
	wantCode(t, appErr, errors.ErrTimeConflict)
}

// ===================== Transitions =====================

func TestConfirmBooking(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	b := seedBooking(repo, studentID, tutorID, entity.StatusPending)
	svc, notifier := newTestService(repo, nil, activeProfile(tutorID, 4000))

	resp, appErr := svc.ConfirmBooking(context.Background(), tutorID, b.ID)
	if appErr != nil {
		t.Fatalf("ConfirmBooking failed: %v", appErr)
	}
	if resp.Status != string(entity.StatusConfirmed) {
		t.Errorf("status = %s, want confirmed", resp.Status)
	}

	if len(notifier.sent) != 1 || notifier.sent[0].userID != studentID ||
		notifier.sent[0].notifType != notifEntity.TypeBookingConfirmed {
		t.Errorf("notifications = %+v, want booking_confirmed to student", notifier.sent)
	}
}

func TestConfirmBookingByStudentForbidden(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	b := seedBooking(repo, studentID, tutorID, entity.StatusPending)
	svc, _ := newTestService(repo, nil, activeProfile(tutorID, 4000))

	_, appErr := svc.ConfirmBooking(context.Background(), studentID, b.ID)
	wantCode(t, appErr, errors.ErrForbidden)
}

func TestConfirmBookingTwice(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	b := seedBooking(repo, studentID, tutorID, entity.StatusConfirmed)
	svc, _ := newTestService(repo, nil, activeProfile(tutorID, 4000))

	_, appErr := svc.ConfirmBooking(context.Background(), tutorID, b.ID)
	wantCode(t, appErr, errors.ErrInvalidTransition)
}

func TestCompleteBookingWithoutConfirming(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	b := seedBooking(repo, studentID, tutorID, entity.StatusPending)
	svc, notifier := newTestService(repo, nil, activeProfile(tutorID, 4000))

	resp, appErr := svc.CompleteBooking(context.Background(), tutorID, b.ID,
		&dto.CompleteBookingRequest{TutorNotes: "Covered quadratic equations"})
	if appErr != nil {
		t.Fatalf("CompleteBooking failed: %v", appErr)
	}
	if resp.Status != string(entity.StatusCompleted) {
		t.Errorf("status = %s, want completed", resp.Status)
	}
	if resp.TutorNotes != "Covered quadratic equations" {
		t.Errorf("tutor notes = %q, not recorded", resp.TutorNotes)
	}

	if len(notifier.sent) != 1 || notifier.sent[0].notifType != notifEntity.TypeBookingCompleted {
		t.Errorf("notifications = %+v, want booking_completed", notifier.sent)
	}
}

func TestCompleteCancelledBooking(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	b := seedBooking(repo, studentID, tutorID, entity.StatusCancelled)
	svc, _ := newTestService(repo, nil, activeProfile(tutorID, 4000))

	_, appErr := svc.CompleteBooking(context.Background(), tutorID, b.ID, nil)
	wantCode(t, appErr, errors.ErrInvalidTransition)
}

func TestCancelBookingByStudent(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	b := seedBooking(repo, studentID, tutorID, entity.StatusConfirmed)
	svc, notifier := newTestService(repo, nil, activeProfile(tutorID, 4000))

	resp, appErr := svc.CancelBooking(context.Background(), studentID, b.ID,
		&dto.CancelBookingRequest{Reason: "Schedule clash"})
	if appErr != nil {
		t.Fatalf("CancelBooking failed: %v", appErr)
	}
	if resp.Status != string(entity.StatusCancelled) {
		t.Errorf("status = %s, want cancelled", resp.Status)
	}
	if resp.CancelledBy != studentID.String() {
		t.Errorf("cancelled_by = %s, want %s", resp.CancelledBy, studentID)
	}
	if resp.CancelReason != "Schedule clash" {
		t.Errorf("cancel_reason = %q, want recorded reason", resp.CancelReason)
	}

	// The other party gets the notification.
	if len(notifier.sent) != 1 || notifier.sent[0].userID != tutorID ||
		notifier.sent[0].notifType != notifEntity.TypeBookingCancelled {
		t.Errorf("notifications = %+v, want booking_cancelled to tutor", notifier.sent)
	}
}

func TestCancelCancelledBooking(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	b := seedBooking(repo, studentID, tutorID, entity.StatusCancelled)
	svc, _ := newTestService(repo, nil, activeProfile(tutorID, 4000))

	_, appErr := svc.CancelBooking(context.Background(), studentID, b.ID, nil)
	wantCode(t, appErr, errors.ErrInvalidTransition)
}

func TestCancelStartedSession(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	b := seedBooking(repo, studentID, tutorID, entity.StatusConfirmed)
	// Session started half an hour ago.
	b.SessionDate = time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC)
	b.StartMinute = testNow.Hour()*60 + testNow.Minute() - 30
	svc, _ := newTestService(repo, nil, activeProfile(tutorID, 4000))

	_, appErr := svc.CancelBooking(context.Background(), studentID, b.ID, nil)
	wantCode(t, appErr, errors.ErrInvalidTransition)
}

func TestCancelBookingByOutsider(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	b := seedBooking(repo, studentID, tutorID, entity.StatusPending)
	svc, _ := newTestService(repo, nil, activeProfile(tutorID, 4000))

	_, appErr := svc.CancelBooking(context.Background(), uuid.New(), b.ID, nil)
	wantCode(t, appErr, errors.ErrForbidden)
}

// ===================== Reads =====================

func TestGetBookingAccess(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	b := seedBooking(repo, studentID, tutorID, entity.StatusPending)
	svc, _ := newTestService(repo, nil, activeProfile(tutorID, 4000))

	if _, appErr := svc.GetBooking(context.Background(), studentID, "student", b.ID); appErr != nil {
		t.Errorf("student denied access: %v", appErr)
	}
	if _, appErr := svc.GetBooking(context.Background(), tutorID, "tutor", b.ID); appErr != nil {
		t.Errorf("tutor denied access: %v", appErr)
	}
	if _, appErr := svc.GetBooking(context.Background(), uuid.New(), "admin", b.ID); appErr != nil {
		t.Errorf("admin denied access: %v", appErr)
	}

	_, appErr := svc.GetBooking(context.Background(), uuid.New(), "student", b.ID)
	wantCode(t, appErr, errors.ErrForbidden)
}

func TestGetBookingNotFound(t *testing.T) {
	svc, _ := newTestService(newFakeBookingRepo(), nil, nil)
	_, appErr := svc.GetBooking(context.Background(), uuid.New(), "admin", uuid.New())
	wantCode(t, appErr, errors.ErrNotFound)
}

func TestListMyBookingsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(newFakeBookingRepo(), nil, nil)
	_, appErr := svc.ListMyBookings(context.Background(), uuid.New(), "student", "archived", params.QueryParams{PageNumber: 1, PageSize: 10})
	wantCode(t, appErr, errors.ErrInvalidInput)
}

// ===================== Free slots =====================

func TestFreeSlots(t *testing.T) {
	tutorID := uuid.New()
	repo := newFakeBookingRepo()
	repo.active = []entity.Booking{
		{StartMinute: 10 * 60, EndMinute: 11 * 60},
		{StartMinute: 13 * 60, EndMinute: 14*60 + 30},
	}
	svc, _ := newTestService(repo, []availEntity.AvailabilitySlot{
		mondaySlot(tutorID, 9*60, 17*60),
	}, activeProfile(tutorID, 4000))

	resp, appErr := svc.FreeSlots(context.Background(), tutorID, testSessionDate)
	if appErr != nil {
		t.Fatalf("FreeSlots failed: %v", appErr)
	}

	want := []dto.FreeWindow{
		{StartTime: "09:00", EndTime: "10:00"},
		{StartTime: "11:00", EndTime: "13:00"},
		{StartTime: "14:30", EndTime: "17:00"},
	}
	if len(resp.Windows) != len(want) {
		t.Fatalf("windows = %+v, want %+v", resp.Windows, want)
	}
	for i := range want {
		if resp.Windows[i] != want[i] {
			t.Errorf("window[%d] = %+v, want %+v", i, resp.Windows[i], want[i])
		}
	}
}

func TestFreeSlotsFullyBooked(t *testing.T) {
	tutorID := uuid.New()
	repo := newFakeBookingRepo()
	repo.active = []entity.Booking{{StartMinute: 9 * 60, EndMinute: 17 * 60}}
	svc, _ := newTestService(repo, []availEntity.AvailabilitySlot{
		mondaySlot(tutorID, 9*60, 17*60),
	}, activeProfile(tutorID, 4000))

	resp, appErr := svc.FreeSlots(context.Background(), tutorID, testSessionDate)
	if appErr != nil {
		t.Fatalf("FreeSlots failed: %v", appErr)
	}
	if len(resp.Windows) != 0 {
		t.Errorf("windows = %+v, want none", resp.Windows)
	}
}

// ===================== No-show sweep =====================

func TestSweepNoShows(t *testing.T) {
	studentID, tutorID := uuid.New(), uuid.New()
	repo := newFakeBookingRepo()
	repo.swept = []entity.Booking{
		{Reference: "BK-a", StudentID: studentID, TutorID: tutorID, BaseEntity: coreEntity.BaseEntity{ID: uuid.New()}},
		{Reference: "BK-b", StudentID: studentID, TutorID: tutorID, BaseEntity: coreEntity.BaseEntity{ID: uuid.New()}},
	}
	svc, notifier := newTestService(repo, nil, nil)

	result, appErr := svc.SweepNoShows(context.Background())
	if appErr != nil {
		t.Fatalf("SweepNoShows failed: %v", appErr)
	}
	if result.Swept != 2 {
		t.Errorf("swept = %d, want 2", result.Swept)
	}
	if len(result.References) != 2 {
		t.Errorf("references = %v, want 2 entries", result.References)
	}

	// Both parties of both bookings are notified.
	if len(notifier.sent) != 4 {
		t.Fatalf("sent %d notifications, want 4", len(notifier.sent))
	}
	for _, n := range notifier.sent {
		if n.notifType != notifEntity.TypeBookingNoShow {
			t.Errorf("notification type = %s, want booking_no_show", n.notifType)
		}
	}
}
