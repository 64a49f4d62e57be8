package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillswapserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SwapRequestsStore struct {
	pool *pgxpool.Pool
}

func NewSwapRequestsStore(pool *pgxpool.Pool) *SwapRequestsStore {
	return &SwapRequestsStore{pool: pool}
}

// Create inserts a Pending request. A partial unique index on
// (from_user_id, to_user_id) WHERE status = 'Pending' makes the at-most-one-
// pending-per-pair invariant hold even under concurrent creates.
func (s *SwapRequestsStore) Create(ctx context.Context, fromUserID, toUserID, offeredSkill, requestedSkill, message string) (string, time.Time, error) {
	const q = `
		INSERT INTO swap_requests (from_user_id, to_user_id, offered_skill, requested_skill, message, status)
		VALUES ($1, $2, $3, $4, $5, 'Pending')
		RETURNING id, created_at
	`

	var (
		idUUID    pgtype.UUID
		createdAt time.Time
	)
	err := s.pool.QueryRow(ctx, q, fromUserID, toUserID, offeredSkill, requestedSkill, message).Scan(&idUUID, &createdAt)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" && pgerr.ConstraintName == "swap_requests_pending_uq" {
			return "", time.Time{}, domain.ErrDuplicatePending
		}
		return "", time.Time{}, fmt.Errorf("create swap request: %w", err)
	}

	return uuidOrEmpty(idUUID), createdAt, nil
}

func (s *SwapRequestsStore) HasPending(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM swap_requests
			WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'Pending'
		)
	`
	var exists bool
	if err := s.pool.QueryRow(ctx, q, fromUserID, toUserID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending request: %w", err)
	}
	return exists, nil
}

const swapRequestSelect = `
	SELECT r.id, r.offered_skill, r.requested_skill, r.message, r.status, r.created_at, r.updated_at,
	       fu.id, fu.name, fu.profile_pic,
	       tu.id, tu.name, tu.profile_pic
	FROM swap_requests r
	JOIN users fu ON fu.id = r.from_user_id
	JOIN users tu ON tu.id = r.to_user_id
`

func (s *SwapRequestsStore) GetByID(ctx context.Context, id string) (domain.SwapRequest, error) {
	const q = swapRequestSelect + `
		WHERE r.id = $1
	`

	r, err := scanSwapRequest(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SwapRequest{}, domain.ErrNotFound
		}
		return domain.SwapRequest{}, fmt.Errorf("get swap request: %w", err)
	}
	return r, nil
}

// ListForUser returns every request the user is a party to, counterpart
// display fields joined in, newest first.
func (s *SwapRequestsStore) ListForUser(ctx context.Context, userID string) ([]domain.SwapRequest, error) {
	const q = swapRequestSelect + `
		WHERE r.from_user_id = $1 OR r.to_user_id = $1
		ORDER BY r.created_at DESC
	`

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list swap requests: %w", err)
	}
	defer rows.Close()

	var out []domain.SwapRequest
	for rows.Next() {
		r, err := scanSwapRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan swap request: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list swap requests: %w", err)
	}
	return out, nil
}

// Resolve flips a Pending request to the given terminal status in a single
// conditional update. The false return means nothing matched: the caller
// re-reads once to tell NotFound, wrong actor, and already-resolved apart.
func (s *SwapRequestsStore) Resolve(ctx context.Context, requestID, targetUserID string, status domain.SwapStatus, when time.Time) (bool, error) {
	const q = `
		UPDATE swap_requests
		SET status = $3, updated_at = $4
		WHERE id = $1 AND to_user_id = $2 AND status = 'Pending'
	`
	ct, err := s.pool.Exec(ctx, q, requestID, targetUserID, string(status), when)
	if err != nil {
		return false, fmt.Errorf("resolve swap request: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func scanSwapRequest(row pgx.Row) (domain.SwapRequest, error) {
	var (
		r       domain.SwapRequest
		idUUID  pgtype.UUID
		message pgtype.Text
		fromID  pgtype.UUID
		toID    pgtype.UUID
	)
	err := row.Scan(
		&idUUID,
		&r.OfferedSkill,
		&r.RequestedSkill,
		&message,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
		&fromID,
		&r.FromUser.Name,
		&r.FromUser.ProfilePic,
		&toID,
		&r.ToUser.Name,
		&r.ToUser.ProfilePic,
	)
	if err != nil {
		return domain.SwapRequest{}, err
	}

	r.ID = uuidOrEmpty(idUUID)
	r.Message = textOrEmpty(message)
	r.FromUser.ID = uuidOrEmpty(fromID)
	r.ToUser.ID = uuidOrEmpty(toID)
	return r, nil
}
