package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/omnifyfit/StudioBack/internal/models"
)

type CreateBookingInput struct {
	Reference uuid.UUID
	UserID    int64
	SessionID int64
}

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(
	ctx context.Context,
	input CreateBookingInput,
) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (reference, user_id, session_id)
		VALUES ($1, $2, $3)
		RETURNING id, reference, user_id, session_id, booked_at
	`
	var booking models.Booking
	err := r.db.QueryRow(ctx, query, input.Reference, input.UserID, input.SessionID).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.SessionID,
		&booking.BookedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID int64) (*models.Booking, error) {
	query := `
		SELECT id, reference, user_id, session_id, booked_at
		FROM bookings
		WHERE id = $1
	`
	var booking models.Booking
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.SessionID,
		&booking.BookedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) ExistsForUserAndSession(
	ctx context.Context,
	userID int64,
	sessionID int64,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE user_id = $1 AND session_id = $2
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, sessionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *BookingRepository) CountBySessionID(ctx context.Context, sessionID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE session_id = $1`, sessionID).
		Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingRepository) ListByUserID(
	ctx context.Context,
	userID int64,
) ([]models.BookingDetail, error) {
	query := `
		SELECT b.id, b.reference, b.user_id, b.session_id, b.booked_at, ` + sessionColumns + `
		FROM bookings b
		JOIN sessions s ON s.id = b.session_id
		JOIN class_types ct ON ct.id = s.class_type_id
		WHERE b.user_id = $1
		ORDER BY b.booked_at ASC, b.id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]models.BookingDetail, 0)
	for rows.Next() {
		var detail models.BookingDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.Reference,
			&detail.UserID,
			&detail.SessionID,
			&detail.BookedAt,
			&detail.Session.ID,
			&detail.Session.ClassTypeID,
			&detail.Session.ClassTypeName,
			&detail.Session.DayOfWeek,
			&detail.Session.StartTime,
			&detail.Session.EndTime,
			&detail.Session.Capacity,
			&detail.Session.InstructorID,
			&detail.Session.CreatedAt,
			&detail.Session.UpdatedAt,
		); err != nil {
			return nil, err
		}
		detail.Session.DayDisplay = models.WeekdayName(detail.Session.DayOfWeek)
		bookings = append(bookings, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) Delete(ctx context.Context, bookingID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
