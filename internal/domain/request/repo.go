package request

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)
	Update(ctx context.Context, r *Request) error
	List(ctx context.Context, limit, offset int) ([]*Request, int, error)
	ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Request, int, error)
	HasActiveDuplicate(ctx context.Context, fullName, contactNumber, roomNumber string) (bool, error)
}
