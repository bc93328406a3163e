package request

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const requestCols = `id, requester_id, full_name, contact_number, room_number, bed_number,
	disease, description, priority, status, assigned_nurse_id,
	assigned_at, completed_at, created_at, updated_at`

func scanRequest(row pgx.Row) (*Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.RequesterID, &r.FullName, &r.ContactNumber, &r.RoomNumber, &r.BedNumber,
		&r.Disease, &r.Description, &r.Priority, &r.Status, &r.AssignedNurseID,
		&r.AssignedAt, &r.CompletedAt, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (rp *repoPG) Create(ctx context.Context, r *Request) error {
	r.ID = uuid.New()
	err := rp.pool.QueryRow(ctx, `
		INSERT INTO help_request (id, requester_id, full_name, contact_number, room_number, bed_number,
			disease, description, priority, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		r.ID, r.RequesterID, r.FullName, r.ContactNumber, r.RoomNumber, r.BedNumber,
		r.Disease, r.Description, r.Priority, r.Status,
	).Scan(&r.CreatedAt, &r.UpdatedAt)

	// The partial unique index on (full_name, contact_number, room_number)
	// over active statuses closes the check-then-act race between the
	// duplicate guard and this insert.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

func (rp *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	r, err := scanRequest(rp.pool.QueryRow(ctx,
		`SELECT `+requestCols+` FROM help_request WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (rp *repoPG) Update(ctx context.Context, r *Request) error {
	tag, err := rp.pool.Exec(ctx, `
		UPDATE help_request SET status=$2, assigned_nurse_id=$3, assigned_at=$4,
			completed_at=$5, updated_at=NOW()
		WHERE id = $1`,
		r.ID, r.Status, r.AssignedNurseID, r.AssignedAt, r.CompletedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (rp *repoPG) List(ctx context.Context, limit, offset int) ([]*Request, int, error) {
	var total int
	if err := rp.pool.QueryRow(ctx, `SELECT COUNT(*) FROM help_request`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := rp.pool.Query(ctx,
		`SELECT `+requestCols+` FROM help_request ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectRequests(rows, total)
}

func (rp *repoPG) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Request, int, error) {
	var total int
	if err := rp.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM help_request WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := rp.pool.Query(ctx,
		`SELECT `+requestCols+` FROM help_request WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectRequests(rows, total)
}

func (rp *repoPG) HasActiveDuplicate(ctx context.Context, fullName, contactNumber, roomNumber string) (bool, error) {
	var exists bool
	err := rp.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM help_request
			WHERE full_name = $1 AND contact_number = $2 AND room_number = $3
			  AND status = ANY($4)
		)`,
		fullName, contactNumber, roomNumber, activeStatusStrings()).Scan(&exists)
	return exists, err
}

func collectRequests(rows pgx.Rows, total int) ([]*Request, int, error) {
	var items []*Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func activeStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}
