package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        int64     `json:"id"`
	Reference uuid.UUID `json:"reference"`
	UserID    int64     `json:"user_id"`
	SessionID int64     `json:"session_id"`
	BookedAt  time.Time `json:"booked_at"`
}

type BookingDetail struct {
	Booking
	Session Session `json:"session"`
}
