package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/omnifyfit/StudioBack/internal/models"
)

type CreateSessionInput struct {
	ClassTypeID  int64
	DayOfWeek    int
	StartTime    models.TimeOfDay
	EndTime      models.TimeOfDay
	Capacity     int
	InstructorID int64
}

type UpdateSessionInput struct {
	ClassTypeID  int64
	DayOfWeek    int
	StartTime    models.TimeOfDay
	EndTime      models.TimeOfDay
	Capacity     int
	InstructorID *int64
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `
	s.id, s.class_type_id, ct.name, s.day_of_week, s.start_min, s.end_min,
	s.capacity, s.instructor_id, s.created_at, s.updated_at
`

func scanSession(row pgx.Row) (*models.Session, error) {
	var session models.Session
	err := row.Scan(
		&session.ID,
		&session.ClassTypeID,
		&session.ClassTypeName,
		&session.DayOfWeek,
		&session.StartTime,
		&session.EndTime,
		&session.Capacity,
		&session.InstructorID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	session.DayDisplay = models.WeekdayName(session.DayOfWeek)
	return &session, nil
}

func (r *SessionRepository) Create(
	ctx context.Context,
	input CreateSessionInput,
) (*models.Session, error) {
	query := `
		WITH inserted AS (
			INSERT INTO sessions (class_type_id, day_of_week, start_min, end_min, capacity, instructor_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *
		)
		SELECT ` + sessionColumns + `
		FROM inserted s
		JOIN class_types ct ON ct.id = s.class_type_id
	`
	return scanSession(r.db.QueryRow(
		ctx,
		query,
		input.ClassTypeID,
		input.DayOfWeek,
		int(input.StartTime),
		int(input.EndTime),
		input.Capacity,
		input.InstructorID,
	))
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN class_types ct ON ct.id = s.class_type_id
		WHERE s.id = $1
	`
	return scanSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *SessionRepository) GetByIDForUpdate(
	ctx context.Context,
	sessionID int64,
) (*models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN class_types ct ON ct.id = s.class_type_id
		WHERE s.id = $1
		FOR UPDATE OF s
	`
	return scanSession(r.db.QueryRow(ctx, query, sessionID))
}

func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN class_types ct ON ct.id = s.class_type_id
		ORDER BY s.day_of_week ASC, s.start_min ASC, s.id ASC
	`
	return r.listSessions(ctx, query)
}

func (r *SessionRepository) ListByInstructor(
	ctx context.Context,
	instructorID int64,
) ([]models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN class_types ct ON ct.id = s.class_type_id
		WHERE s.instructor_id = $1
		ORDER BY s.day_of_week ASC, s.start_min ASC, s.id ASC
	`
	return r.listSessions(ctx, query, instructorID)
}

// ListOverlapping returns the instructor's sessions on the given day whose
// [start, end) interval intersects the requested one. Back-to-back sessions
// do not intersect.
func (r *SessionRepository) ListOverlapping(
	ctx context.Context,
	instructorID int64,
	dayOfWeek int,
	startTime models.TimeOfDay,
	endTime models.TimeOfDay,
) ([]models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN class_types ct ON ct.id = s.class_type_id
		WHERE s.instructor_id = $1
		  AND s.day_of_week = $2
		  AND s.start_min < $4
		  AND s.end_min > $3
		ORDER BY s.start_min ASC, s.id ASC
	`
	return r.listSessions(ctx, query, instructorID, dayOfWeek, int(startTime), int(endTime))
}

func (r *SessionRepository) ListOverlappingExcludingSession(
	ctx context.Context,
	instructorID int64,
	dayOfWeek int,
	startTime models.TimeOfDay,
	endTime models.TimeOfDay,
	excludedSessionID int64,
) ([]models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM sessions s
		JOIN class_types ct ON ct.id = s.class_type_id
		WHERE s.instructor_id = $1
		  AND s.id <> $5
		  AND s.day_of_week = $2
		  AND s.start_min < $4
		  AND s.end_min > $3
		ORDER BY s.start_min ASC, s.id ASC
	`
	return r.listSessions(ctx, query, instructorID, dayOfWeek, int(startTime), int(endTime), excludedSessionID)
}

func (r *SessionRepository) SlotExists(
	ctx context.Context,
	classTypeID int64,
	dayOfWeek int,
	startTime models.TimeOfDay,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sessions
			WHERE class_type_id = $1
			  AND day_of_week = $2
			  AND start_min = $3
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, classTypeID, dayOfWeek, int(startTime)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SessionRepository) SlotExistsExcludingSession(
	ctx context.Context,
	classTypeID int64,
	dayOfWeek int,
	startTime models.TimeOfDay,
	excludedSessionID int64,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM sessions
			WHERE class_type_id = $1
			  AND id <> $4
			  AND day_of_week = $2
			  AND start_min = $3
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, classTypeID, dayOfWeek, int(startTime), excludedSessionID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SessionRepository) Update(
	ctx context.Context,
	sessionID int64,
	input UpdateSessionInput,
) (*models.Session, error) {
	query := `
		WITH updated AS (
			UPDATE sessions
			SET class_type_id = $2,
			    day_of_week = $3,
			    start_min = $4,
			    end_min = $5,
			    capacity = $6,
			    instructor_id = $7,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + sessionColumns + `
		FROM updated s
		JOIN class_types ct ON ct.id = s.class_type_id
	`
	return scanSession(r.db.QueryRow(
		ctx,
		query,
		sessionID,
		input.ClassTypeID,
		input.DayOfWeek,
		int(input.StartTime),
		int(input.EndTime),
		input.Capacity,
		input.InstructorID,
	))
}

// Delete removes the session; bookings referencing it are removed by the
// ON DELETE CASCADE constraint.
func (r *SessionRepository) Delete(ctx context.Context, sessionID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *SessionRepository) listSessions(
	ctx context.Context,
	query string,
	args ...any,
) ([]models.Session, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
