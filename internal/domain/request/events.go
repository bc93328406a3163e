package request

import (
	"github.com/google/uuid"

	"github.com/careline/careline/internal/domain/triage"
)

// ResponderRole is the dispatch partition that receives request events.
const ResponderRole = "nurse"

// Event names published over the dispatch channel.
const (
	EventNewRequest       = "newRequest"
	EventStatusUpdated    = "statusUpdated"
	EventRequestCompleted = "requestCompleted"
)

// NewRequestPayload is the summary pushed to responders on creation.
type NewRequestPayload struct {
	RequestID   uuid.UUID       `json:"requestId"`
	Priority    triage.Priority `json:"priority"`
	Disease     string          `json:"disease"`
	PatientName string          `json:"patientName"`
	RoomNumber  string          `json:"roomNumber"`
	Description string          `json:"description"`
}

// newRequestPayload builds the creation event payload from a record.
func newRequestPayload(r *Request) NewRequestPayload {
	return NewRequestPayload{
		RequestID:   r.ID,
		Priority:    r.Priority,
		Disease:     r.Disease,
		PatientName: r.FullName,
		RoomNumber:  r.RoomNumber,
		Description: r.Description,
	}
}
