package repository

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tutorhub-api/core/constants"
	"tutorhub-api/core/database"
	coreEntity "tutorhub-api/core/entity"
	"tutorhub-api/core/logger"
	"tutorhub-api/core/params"
	"tutorhub-api/modules/booking/entity"
)

// BookingRepository handles bookings database operations.
type BookingRepository struct {
	DB database.Database
}

func NewBookingRepository(db database.Database) *BookingRepository {
	return &BookingRepository{DB: db}
}

// BookingRepositoryInterface defines the repository contract.
type BookingRepositoryInterface interface {
	CreateWithConflictScan(ctx context.Context, b *entity.Booking) (*entity.Booking, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	ListActiveByTutorDate(ctx context.Context, tutorID uuid.UUID, sessionDate time.Time) ([]entity.Booking, error)
	ListByActor(ctx context.Context, userID uuid.UUID, role string, status entity.BookingStatus, qp params.QueryParams) (*entity.PaginatedBookingEntity, error)
	Transition(ctx context.Context, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus, tutorNotes *string) (*entity.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID, from []entity.BookingStatus, cancelledBy uuid.UUID, reason *string) (*entity.Booking, error)
	SweepNoShows(ctx context.Context, today time.Time, nowMinute int) ([]entity.Booking, error)
}

const bookingColumns = `id, reference, student_id, tutor_id, tutor_profile_id, subject,
       session_date, start_minute, end_minute, duration_minutes, price_cents, currency,
       status, student_notes, tutor_notes, cancelled_by, cancel_reason, cancelled_at,
       created_at, updated_at`

// CreateWithConflictScan pairs the overlap scan and the insert in one
// transaction. The returned bool is true when the scan found a live
// overlapping booking; the caller should not treat that as a failure of
// the insert itself. A concurrent insert that slips between scan and
// commit is rejected by the bookings_no_overlap exclusion constraint,
// which surfaces here as a 23P01 error.
func (r *BookingRepository) CreateWithConflictScan(ctx context.Context, b *entity.Booking) (*entity.Booking, bool, error) {
	tx, err := r.DB.BeginTxx(ctx)
	if err != nil {
		logger.Error("BookingRepository:CreateWithConflictScan:Begin", err)
		return nil, false, err
	}
	defer tx.Rollback()

	scanQuery := `
		SELECT 1 FROM bookings
		WHERE tutor_id = $1 AND session_date = $2
		  AND status IN ('pending', 'confirmed')
		  AND start_minute < $4 AND $3 < end_minute
		LIMIT 1
	`

	var one int
	err = tx.GetContext(ctx, &one, scanQuery, b.TutorID, b.SessionDate, b.StartMinute, b.EndMinute)
	if err == nil {
		return nil, true, nil
	}
	if err != sql.ErrNoRows {
		logger.Error("BookingRepository:CreateWithConflictScan:Scan", err)
		return nil, false, err
	}

	insertQuery := `
		INSERT INTO bookings (reference, student_id, tutor_id, tutor_profile_id, subject,
		                      session_date, start_minute, end_minute, duration_minutes,
		                      price_cents, currency, status, student_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + bookingColumns

	var created entity.Booking
	err = tx.GetContext(ctx, &created, insertQuery,
		b.Reference, b.StudentID, b.TutorID, b.TutorProfileID, b.Subject,
		b.SessionDate, b.StartMinute, b.EndMinute, b.DurationMinutes,
		b.PriceCents, b.Currency, b.Status, b.StudentNotes)
	if err != nil {
		if !database.IsExclusionViolation(err) {
			logger.Error("BookingRepository:CreateWithConflictScan:Insert", err)
		}
		return nil, false, err
	}

	if err = tx.Commit(); err != nil {
		if !database.IsExclusionViolation(err) {
			logger.Error("BookingRepository:CreateWithConflictScan:Commit", err)
		}
		return nil, false, err
	}

	return &created, false, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b entity.Booking
	err := r.DB.GetContext(ctx, &b, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:GetByID", err)
		return nil, err
	}
	return &b, nil
}

// ListActiveByTutorDate returns the tutor's pending and confirmed bookings
// on a date, ordered by start time. Feeds the conflict pre-check and the
// free-slot computation.
func (r *BookingRepository) ListActiveByTutorDate(ctx context.Context, tutorID uuid.UUID, sessionDate time.Time) ([]entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tutor_id = $1 AND session_date = $2 AND status IN ('pending', 'confirmed')
		ORDER BY start_minute
	`

	var bookings []entity.Booking
	if err := r.DB.SelectContext(ctx, &bookings, query, tutorID, sessionDate); err != nil {
		logger.Error("BookingRepository:ListActiveByTutorDate", err)
		return nil, err
	}
	return bookings, nil
}

// ListByActor pages through the caller's bookings. Students see bookings
// they made, tutors see bookings made with them, admins see everything.
func (r *BookingRepository) ListByActor(ctx context.Context, userID uuid.UUID, role string, status entity.BookingStatus, qp params.QueryParams) (*entity.PaginatedBookingEntity, error) {
	where := ``
	args := []any{}

	switch role {
	case constants.RoleStudent:
		where = `WHERE student_id = $1`
		args = append(args, userID)
	case constants.RoleTutor:
		where = `WHERE tutor_id = $1`
		args = append(args, userID)
	default:
		where = `WHERE TRUE`
	}

	if status != "" {
		args = append(args, status)
		where += ` AND status = $` + itoa(len(args))
	}

	var totalItems int
	if err := r.DB.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM bookings `+where, args...); err != nil {
		logger.Error("BookingRepository:ListByActor:Count", err)
		return nil, err
	}

	args = append(args, qp.PageSize)
	limitPos := itoa(len(args))
	args = append(args, qp.Offset())
	offsetPos := itoa(len(args))

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings ` + where + `
		ORDER BY session_date DESC, start_minute DESC
		LIMIT $` + limitPos + ` OFFSET $` + offsetPos

	var bookings []entity.Booking
	if err := r.DB.SelectContext(ctx, &bookings, query, args...); err != nil {
		logger.Error("BookingRepository:ListByActor:Select", err)
		return nil, err
	}

	return &entity.PaginatedBookingEntity{
		Items:      bookings,
		TotalItems: totalItems,
		TotalPages: coreEntity.TotalPagesFor(totalItems, qp.PageSize),
		PageNumber: qp.PageNumber,
		PageSize:   qp.PageSize,
	}, nil
}

// Transition applies a status change as a single compare-and-set row
// update. Returns nil when the booking is gone or no longer in an
// allowed source state, so simultaneous transition attempts cannot both
// succeed.
func (r *BookingRepository) Transition(ctx context.Context, id uuid.UUID, from []entity.BookingStatus, to entity.BookingStatus, tutorNotes *string) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $3, tutor_notes = COALESCE($4, tutor_notes), updated_at = NOW()
		WHERE id = $1 AND status = ANY($2)
		RETURNING ` + bookingColumns

	var b entity.Booking
	err := r.DB.GetContext(ctx, &b, query, id, statusArray(from), to, tutorNotes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:Transition", err)
		return nil, err
	}
	return &b, nil
}

// Cancel transitions to cancelled and writes the cancellation triple in
// the same atomic update.
func (r *BookingRepository) Cancel(ctx context.Context, id uuid.UUID, from []entity.BookingStatus, cancelledBy uuid.UUID, reason *string) (*entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_by = $3, cancel_reason = $4,
		    cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = ANY($2)
		RETURNING ` + bookingColumns

	var b entity.Booking
	err := r.DB.GetContext(ctx, &b, query, id, statusArray(from), cancelledBy, reason)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("BookingRepository:Cancel", err)
		return nil, err
	}
	return &b, nil
}

// SweepNoShows marks every pending or confirmed booking whose session end
// has passed as no_show and returns the affected rows.
func (r *BookingRepository) SweepNoShows(ctx context.Context, today time.Time, nowMinute int) ([]entity.Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'no_show', updated_at = NOW()
		WHERE status IN ('pending', 'confirmed')
		  AND (session_date < $1 OR (session_date = $1 AND end_minute <= $2))
		RETURNING ` + bookingColumns

	var swept []entity.Booking
	if err := r.DB.SelectContext(ctx, &swept, query, today, nowMinute); err != nil {
		logger.Error("BookingRepository:SweepNoShows", err)
		return nil, err
	}
	return swept, nil
}

func statusArray(statuses []entity.BookingStatus) any {
	ss := make([]string, len(statuses))
	for i, s := range statuses {
		ss[i] = string(s)
	}
	return pq.Array(ss)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
