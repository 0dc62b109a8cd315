package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omnifyfit/StudioBack/internal/models"
	"github.com/omnifyfit/StudioBack/internal/repository"
)

type BookingService struct {
	db          *pgxpool.Pool
	bookingRepo *repository.BookingRepository
}

func NewBookingService(db *pgxpool.Pool, bookingRepo *repository.BookingRepository) *BookingService {
	return &BookingService{db: db, bookingRepo: bookingRepo}
}

// Book enrolls a client in a session. The capacity and double-booking checks
// run inside the same transaction as the insert, serialized per session by an
// advisory lock, so two concurrent bookings cannot both take the last seat.
func (s *BookingService) Book(
	ctx context.Context,
	clientID int64,
	sessionID int64,
) (*models.Booking, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txBookingRepo := repository.NewBookingRepository(tx)
	txSessionRepo := repository.NewSessionRepository(tx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", lockScopeBooking|sessionID); err != nil {
		return nil, err
	}

	session, err := txSessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	exists, err := txBookingRepo.ExistsForUserAndSession(ctx, clientID, sessionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyBooked
	}

	count, err := txBookingRepo.CountBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if count >= session.Capacity {
		return nil, ErrCapacityExceeded
	}

	booking, err := txBookingRepo.Create(ctx, repository.CreateBookingInput{
		Reference: uuid.New(),
		UserID:    clientID,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return booking, nil
}

// Cancel removes a booking owned by the requesting client.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64, clientID int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if booking.UserID != clientID {
		return ErrForbidden
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *BookingService) ListByClient(
	ctx context.Context,
	clientID int64,
) ([]models.BookingDetail, error) {
	return s.bookingRepo.ListByUserID(ctx, clientID)
}
