package request

import (
	"time"

	"github.com/google/uuid"

	"github.com/careline/careline/internal/domain/triage"
)

// Status is the lifecycle state of a help request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsValid reports whether s is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive reports whether a request in this state counts against the
// one-active-request-per-patient invariant.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusAssigned || s == StatusInProgress
}

// ActiveStatuses lists the states that block duplicate submissions.
var ActiveStatuses = []Status{StatusPending, StatusAssigned, StatusInProgress}

// transitions is the allowed transition table. Cancellation is reachable
// from any non-terminal state; terminal states permit nothing.
var transitions = map[Status][]Status{
	StatusPending:    {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a request may move from one status to
// another.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Request maps to the help_request table.
type Request struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	RequesterID     *uuid.UUID      `db:"requester_id" json:"requester_id,omitempty"`
	FullName        string          `db:"full_name" json:"full_name"`
	ContactNumber   string          `db:"contact_number" json:"contact_number"`
	RoomNumber      string          `db:"room_number" json:"room_number"`
	BedNumber       *string         `db:"bed_number" json:"bed_number,omitempty"`
	Disease         string          `db:"disease" json:"disease"`
	Description     string          `db:"description" json:"description"`
	Priority        triage.Priority `db:"priority" json:"priority"`
	Status          Status          `db:"status" json:"status"`
	AssignedNurseID *uuid.UUID      `db:"assigned_nurse_id" json:"assigned_nurse_id,omitempty"`
	AssignedAt      *time.Time      `db:"assigned_at" json:"assigned_at,omitempty"`
	CompletedAt     *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}
