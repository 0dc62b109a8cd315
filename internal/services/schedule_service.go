package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omnifyfit/StudioBack/internal/models"
	"github.com/omnifyfit/StudioBack/internal/repository"
)

// Advisory lock keyspaces so schedule writes (per instructor) and booking
// writes (per session) never contend on the same key.
const (
	lockScopeSchedule = int64(1) << 32
	lockScopeBooking  = int64(2) << 32
)

type classTypeReader interface {
	GetByName(ctx context.Context, name string) (*models.ClassType, error)
}

type principalReader interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type ScheduleService struct {
	db            *pgxpool.Pool
	sessionRepo   *repository.SessionRepository
	classTypeRepo classTypeReader
	userRepo      principalReader
}

func NewScheduleService(
	db *pgxpool.Pool,
	sessionRepo *repository.SessionRepository,
	classTypeRepo classTypeReader,
	userRepo principalReader,
) *ScheduleService {
	return &ScheduleService{
		db:            db,
		sessionRepo:   sessionRepo,
		classTypeRepo: classTypeRepo,
		userRepo:      userRepo,
	}
}

type CreateScheduleInput struct {
	ClassType       string
	DaysOfWeek      []string
	StartTime       models.TimeOfDay
	DurationMinutes int
	Capacity        int
	InstructorEmail string
}

type UpdateScheduleInput struct {
	ClassType       *string
	DaysOfWeek      []string
	StartTime       *models.TimeOfDay
	DurationMinutes *int
	Capacity        *int
	InstructorEmail *string
}

// CreateRecurring expands a multi-day request into one session row per day.
// Creation is all-or-nothing: every requested day is checked for slot
// duplicates and instructor overlap first, all conflicts are aggregated, and
// rows are only inserted when no day conflicts.
func (s *ScheduleService) CreateRecurring(
	ctx context.Context,
	input CreateScheduleInput,
) ([]models.Session, error) {
	days, err := resolveDays(input.DaysOfWeek)
	if err != nil {
		return nil, err
	}

	endTime, err := sessionWindow(input.StartTime, input.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if input.Capacity <= 0 {
		return nil, newValidationError("capacity must be greater than 0")
	}

	classType, err := s.classTypeRepo.GetByName(ctx, input.ClassType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, newValidationError(fmt.Sprintf("Class type '%s' does not exist.", input.ClassType))
		}
		return nil, err
	}

	instructor, err := s.resolveInstructor(ctx, input.InstructorEmail)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", lockScopeSchedule|instructor.ID); err != nil {
		return nil, err
	}

	var conflicts []string
	for _, day := range days {
		dayConflicts, err := s.findDayConflicts(ctx, txSessionRepo, dayConflictQuery{
			classType:   classType,
			instructor:  instructor,
			dayOfWeek:   day,
			startTime:   input.StartTime,
			endTime:     endTime,
			excludedID:  0,
			checkDuplic: true,
		})
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, dayConflicts...)
	}
	if len(conflicts) > 0 {
		return nil, &ValidationError{Messages: conflicts}
	}

	created := make([]models.Session, 0, len(days))
	for _, day := range days {
		session, err := txSessionRepo.Create(ctx, repository.CreateSessionInput{
			ClassTypeID:  classType.ID,
			DayOfWeek:    day,
			StartTime:    input.StartTime,
			EndTime:      endTime,
			Capacity:     input.Capacity,
			InstructorID: instructor.ID,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, *session)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// Update changes a single session row. A multi-day list is rejected rather
// than silently applying the first entry; fan-out is a create-only behavior.
func (s *ScheduleService) Update(
	ctx context.Context,
	sessionID int64,
	input UpdateScheduleInput,
) (*models.Session, error) {
	if len(input.DaysOfWeek) > 1 {
		return nil, newValidationError("day_of_week must contain a single day when updating a session")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSessionRepo := repository.NewSessionRepository(tx)

	current, err := txSessionRepo.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	next := repository.UpdateSessionInput{
		ClassTypeID:  current.ClassTypeID,
		DayOfWeek:    current.DayOfWeek,
		StartTime:    current.StartTime,
		EndTime:      current.EndTime,
		Capacity:     current.Capacity,
		InstructorID: current.InstructorID,
	}

	if len(input.DaysOfWeek) == 1 {
		day, err := models.ParseWeekday(input.DaysOfWeek[0])
		if err != nil {
			return nil, newValidationError(err.Error())
		}
		next.DayOfWeek = day
	}

	classType := &models.ClassType{ID: current.ClassTypeID, Name: current.ClassTypeName}
	if input.ClassType != nil {
		classType, err = s.classTypeRepo.GetByName(ctx, *input.ClassType)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, newValidationError(fmt.Sprintf("Class type '%s' does not exist.", *input.ClassType))
			}
			return nil, err
		}
		next.ClassTypeID = classType.ID
	}

	var instructor *models.User
	if input.InstructorEmail != nil {
		instructor, err = s.resolveInstructor(ctx, *input.InstructorEmail)
		if err != nil {
			return nil, err
		}
		next.InstructorID = &instructor.ID
	}

	if input.StartTime != nil {
		next.StartTime = *input.StartTime
	}
	duration := int(current.EndTime - current.StartTime)
	if input.DurationMinutes != nil {
		duration = *input.DurationMinutes
	}
	next.EndTime, err = sessionWindow(next.StartTime, duration)
	if err != nil {
		return nil, err
	}

	if input.Capacity != nil {
		if *input.Capacity <= 0 {
			return nil, newValidationError("capacity must be greater than 0")
		}
		next.Capacity = *input.Capacity
	}

	if next.InstructorID != nil {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", lockScopeSchedule|*next.InstructorID); err != nil {
			return nil, err
		}
	}

	conflictInstructor := instructor
	if conflictInstructor == nil && next.InstructorID != nil {
		owner, err := s.userRepo.GetByID(ctx, *next.InstructorID)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
		} else {
			conflictInstructor = owner
		}
	}

	conflicts, err := s.findDayConflicts(ctx, txSessionRepo, dayConflictQuery{
		classType:   classType,
		instructor:  conflictInstructor,
		dayOfWeek:   next.DayOfWeek,
		startTime:   next.StartTime,
		endTime:     next.EndTime,
		excludedID:  sessionID,
		checkDuplic: true,
	})
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ValidationError{Messages: conflicts}
	}

	updated, err := txSessionRepo.Update(ctx, sessionID, next)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *ScheduleService) Delete(ctx context.Context, sessionID int64) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// DeleteOwnedByInstructor removes a session together with its bookings, but
// only when the requesting instructor owns it.
func (s *ScheduleService) DeleteOwnedByInstructor(
	ctx context.Context,
	sessionID int64,
	instructorID int64,
) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if session.InstructorID == nil || *session.InstructorID != instructorID {
		return ErrForbidden
	}
	return s.Delete(ctx, sessionID)
}

func (s *ScheduleService) List(ctx context.Context) ([]models.Session, error) {
	return s.sessionRepo.List(ctx)
}

func (s *ScheduleService) ListByInstructor(
	ctx context.Context,
	instructorID int64,
) ([]models.Session, error) {
	return s.sessionRepo.ListByInstructor(ctx, instructorID)
}

func (s *ScheduleService) resolveInstructor(
	ctx context.Context,
	email string,
) (*models.User, error) {
	instructor, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, newValidationError("Instructor with this email does not exist.")
		}
		return nil, err
	}
	if instructor.Role != models.RoleInstructor {
		return nil, newValidationError("User is not an instructor.")
	}
	return instructor, nil
}

type dayConflictQuery struct {
	classType   *models.ClassType
	instructor  *models.User
	dayOfWeek   int
	startTime   models.TimeOfDay
	endTime     models.TimeOfDay
	excludedID  int64
	checkDuplic bool
}

func (s *ScheduleService) findDayConflicts(
	ctx context.Context,
	repo *repository.SessionRepository,
	q dayConflictQuery,
) ([]string, error) {
	var conflicts []string

	if q.checkDuplic {
		var exists bool
		var err error
		if q.excludedID > 0 {
			exists, err = repo.SlotExistsExcludingSession(ctx, q.classType.ID, q.dayOfWeek, q.startTime, q.excludedID)
		} else {
			exists, err = repo.SlotExists(ctx, q.classType.ID, q.dayOfWeek, q.startTime)
		}
		if err != nil {
			return nil, err
		}
		if exists {
			conflicts = append(conflicts, fmt.Sprintf(
				"A session with class '%s' already exists on %s at %s.",
				q.classType.Name, models.WeekdayName(q.dayOfWeek), q.startTime,
			))
		}
	}

	if q.instructor == nil {
		return conflicts, nil
	}

	var overlapping []models.Session
	var err error
	if q.excludedID > 0 {
		overlapping, err = repo.ListOverlappingExcludingSession(
			ctx, q.instructor.ID, q.dayOfWeek, q.startTime, q.endTime, q.excludedID)
	} else {
		overlapping, err = repo.ListOverlapping(
			ctx, q.instructor.ID, q.dayOfWeek, q.startTime, q.endTime)
	}
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		ranges := make([]string, 0, len(overlapping))
		for _, other := range overlapping {
			ranges = append(ranges, fmt.Sprintf("%s - %s", other.StartTime, other.EndTime))
		}
		conflicts = append(conflicts, fmt.Sprintf(
			"Instructor '%s' is already scheduled on %s during: %s.",
			q.instructor.Email, models.WeekdayName(q.dayOfWeek), strings.Join(ranges, "; "),
		))
	}

	return conflicts, nil
}

// resolveDays maps day tokens to day codes, reporting every invalid token.
// Tokens resolving to the same day collapse to a single entry.
func resolveDays(tokens []string) ([]int, error) {
	if len(tokens) == 0 {
		return nil, newValidationError("day_of_week must contain at least one day")
	}

	var invalid []string
	seen := make(map[int]bool, len(tokens))
	days := make([]int, 0, len(tokens))
	for _, token := range tokens {
		day, err := models.ParseWeekday(token)
		if err != nil {
			invalid = append(invalid, err.Error())
			continue
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if len(invalid) > 0 {
		return nil, &ValidationError{Messages: invalid}
	}
	return days, nil
}

// sessionWindow computes the exclusive end of a slot. Slots must fit within
// one day; a duration that would cross midnight is rejected.
func sessionWindow(start models.TimeOfDay, durationMinutes int) (models.TimeOfDay, error) {
	if durationMinutes <= 0 {
		return 0, newValidationError("duration_minutes must be greater than 0")
	}
	end := start + models.TimeOfDay(durationMinutes)
	if end > models.MinutesPerDay {
		return 0, newValidationError("session cannot extend past midnight")
	}
	return end, nil
}
