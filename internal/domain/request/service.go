package request

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careline/careline/internal/domain/triage"
	"github.com/careline/careline/internal/platform/dispatch"
)

// DefaultClassifyTimeout bounds classification during request creation.
// Classification never blocks creation: on timeout the record is written
// with fallback values.
const DefaultClassifyTimeout = 2 * time.Second

type Service struct {
	repo            Repository
	classifier      *triage.Classifier
	publisher       dispatch.Publisher
	logger          zerolog.Logger
	classifyTimeout time.Duration
}

func NewService(repo Repository, classifier *triage.Classifier, publisher dispatch.Publisher, logger zerolog.Logger, classifyTimeout time.Duration) *Service {
	if classifyTimeout <= 0 {
		classifyTimeout = DefaultClassifyTimeout
	}
	return &Service{
		repo:            repo,
		classifier:      classifier,
		publisher:       publisher,
		logger:          logger,
		classifyTimeout: classifyTimeout,
	}
}

// CreateInput carries the submission fields for a new help request.
type CreateInput struct {
	RequesterID   *uuid.UUID `json:"requester_id,omitempty"`
	FullName      string     `json:"full_name"`
	ContactNumber string     `json:"contact_number"`
	RoomNumber    string     `json:"room_number"`
	BedNumber     *string    `json:"bed_number,omitempty"`
	Disease       string     `json:"disease"`
}

func (in *CreateInput) validate() error {
	if strings.TrimSpace(in.FullName) == "" {
		return &ValidationError{Field: "full_name"}
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		return &ValidationError{Field: "contact_number"}
	}
	if strings.TrimSpace(in.RoomNumber) == "" {
		return &ValidationError{Field: "room_number"}
	}
	if strings.TrimSpace(in.Disease) == "" {
		return &ValidationError{Field: "disease"}
	}
	return nil
}

// Create triages and persists a new help request. The duplicate guard
// rejects a submission while an equivalent request is still active; the
// partial unique index in the store backstops the guard under concurrency.
// A newRequest event is pushed to the responder partition on success.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Request, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	dup, err := s.repo.HasActiveDuplicate(ctx, in.FullName, in.ContactNumber, in.RoomNumber)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicate
	}

	priority, description := s.classifyAndDescribe(ctx, in.Disease)

	r := &Request{
		RequesterID:   in.RequesterID,
		FullName:      in.FullName,
		ContactNumber: in.ContactNumber,
		RoomNumber:    in.RoomNumber,
		BedNumber:     in.BedNumber,
		Disease:       in.Disease,
		Description:   description,
		Priority:      priority,
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.publish(ctx, EventNewRequest, newRequestPayload(r))

	return r, nil
}

// classifyAndDescribe runs the classifier and description generator
// concurrently and joins both results under a bounded timeout. Either
// failure resolves to the documented fallbacks; creation always proceeds.
func (s *Service) classifyAndDescribe(ctx context.Context, disease string) (triage.Priority, string) {
	type classifyResult struct {
		priority    triage.Priority
		description string
	}

	pch := make(chan triage.Priority, 1)
	dch := make(chan string, 1)
	go func() { pch <- s.classifier.Classify(disease) }()
	go func() { dch <- s.classifier.Describe(disease) }()

	result := classifyResult{
		priority:    triage.PriorityMedium,
		description: triage.FallbackDescription(disease),
	}

	timer := time.NewTimer(s.classifyTimeout)
	defer timer.Stop()

	for i := 0; i < 2; i++ {
		select {
		case p := <-pch:
			result.priority = p
			pch = nil
		case d := <-dch:
			result.description = d
			dch = nil
		case <-timer.C:
			s.logger.Warn().Str("disease", disease).Msg("classification timed out, using fallback values")
			return result.priority, result.description
		case <-ctx.Done():
			return result.priority, result.description
		}
	}

	return result.priority, result.description
}

// Assign hands a pending request to a responder. The transition table
// applies: only pending requests can be assigned.
func (s *Service) Assign(ctx context.Context, id, nurseID uuid.UUID) (*Request, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(r.Status, StatusAssigned) {
		return nil, &TransitionError{From: r.Status, To: StatusAssigned}
	}

	now := time.Now().UTC()
	r.AssignedNurseID = &nurseID
	r.AssignedAt = &now
	r.Status = StatusAssigned

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.publish(ctx, EventStatusUpdated, r)

	return r, nil
}

// UpdateStatus moves a request to a new lifecycle state. Illegal
// transitions, including any move out of a terminal state, are rejected.
// Completion stamps completedAt and emits an additional requestCompleted
// event alongside the statusUpdated event.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus Status) (*Request, error) {
	if !newStatus.IsValid() {
		return nil, &ValidationError{Field: "status", Message: "unknown status " + string(newStatus)}
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(r.Status, newStatus) {
		return nil, &TransitionError{From: r.Status, To: newStatus}
	}

	r.Status = newStatus
	if newStatus == StatusCompleted {
		now := time.Now().UTC()
		r.CompletedAt = &now
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.publish(ctx, EventStatusUpdated, r)
	if newStatus == StatusCompleted {
		s.publish(ctx, EventRequestCompleted, r)
	}

	return r, nil
}

// Get returns a single request by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Request, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns requests ordered by creation time, newest first, optionally
// filtered by status.
func (s *Service) List(ctx context.Context, status Status, limit, offset int) ([]*Request, int, error) {
	if status != "" {
		if !status.IsValid() {
			return nil, 0, &ValidationError{Field: "status", Message: "unknown status " + string(status)}
		}
		return s.repo.ListByStatus(ctx, status, limit, offset)
	}
	return s.repo.List(ctx, limit, offset)
}

// publish pushes an event to the responder partition. Dispatch is
// best-effort at-most-once; failures are logged and never surfaced.
func (s *Service) publish(ctx context.Context, eventName string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error().Err(err).Str("event", eventName).Msg("failed to marshal event payload")
		return
	}

	err = s.publisher.PublishToRole(ctx, ResponderRole, dispatch.Event{
		Type:      eventName,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("event", eventName).Msg("failed to publish event")
	}
}
