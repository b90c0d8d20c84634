package reservation

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("reservation not found")
	ErrUnknownLibrary = errors.New("unknown library")
)

// State is where a reservation sits in its lifecycle. New reservations start staging.
type State string

const (
	StateStaging   State = "staging"
	StateStaged    State = "staged"
	StateReserved  State = "reserved"
	StateCompleted State = "completed"
)

type Reservation struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	LibraryName string     `json:"library_name"`
	ISBN        string     `json:"isbn"`
	State       State      `json:"state"`
	StagingAt   time.Time  `json:"staging_at"`
	StagedAt    *time.Time `json:"staged_at"`
	ReservedAt  *time.Time `json:"reserved_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type Chunk struct {
	Reservations []Reservation `json:"reservations"`
	TotalCount   int           `json:"total_count"`
}
