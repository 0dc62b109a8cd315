package models

import "time"

// Session is one weekly recurring time slot for a class type, owned by at
// most one instructor.
type Session struct {
	ID            int64     `json:"id"`
	ClassTypeID   int64     `json:"class_type_id"`
	ClassTypeName string    `json:"class_type"`
	DayOfWeek     int       `json:"day_of_week"`
	DayDisplay    string    `json:"day_of_week_display"`
	StartTime     TimeOfDay `json:"start_time"`
	EndTime       TimeOfDay `json:"end_time"`
	Capacity      int       `json:"capacity"`
	InstructorID  *int64    `json:"instructor_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
