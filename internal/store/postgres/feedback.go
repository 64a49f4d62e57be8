package postgres

import (
	"context"
	"errors"
	"fmt"

	"skillswapserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedbackStore struct {
	pool *pgxpool.Pool
}

func NewFeedbackStore(pool *pgxpool.Pool) *FeedbackStore {
	return &FeedbackStore{pool: pool}
}

// Create inserts a feedback entry and recomputes the subject's aggregate
// rating inside one transaction.
func (s *FeedbackStore) Create(ctx context.Context, userID, authorID, message string, rating int) (domain.FeedbackEntry, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.FeedbackEntry{}, fmt.Errorf("begin feedback tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertQ = `
		INSERT INTO feedback (user_id, author_id, message, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	var (
		e      domain.FeedbackEntry
		idUUID pgtype.UUID
	)
	e.Message = message
	e.Rating = rating
	if err := tx.QueryRow(ctx, insertQ, userID, authorID, message, rating).Scan(&idUUID, &e.CreatedAt); err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) {
			switch {
			case pgerr.Code == "23505" && pgerr.ConstraintName == "feedback_author_uq":
				return domain.FeedbackEntry{}, domain.ErrFeedbackExists
			case pgerr.Code == "23503":
				return domain.FeedbackEntry{}, domain.ErrNotFound
			}
		}
		return domain.FeedbackEntry{}, fmt.Errorf("create feedback: %w", err)
	}
	e.ID = uuidOrEmpty(idUUID)

	const ratingQ = `
		UPDATE users
		SET rating = (SELECT avg(rating) FROM feedback WHERE user_id = $1), updated_at = now()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, ratingQ, userID); err != nil {
		return domain.FeedbackEntry{}, fmt.Errorf("update rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.FeedbackEntry{}, fmt.Errorf("commit feedback tx: %w", err)
	}

	const authorQ = `SELECT id, name, profile_pic FROM users WHERE id = $1`
	var authorUUID pgtype.UUID
	if err := s.pool.QueryRow(ctx, authorQ, authorID).Scan(&authorUUID, &e.Author.Name, &e.Author.ProfilePic); err == nil {
		e.Author.ID = uuidOrEmpty(authorUUID)
	} else {
		e.Author.ID = authorID
	}

	return e, nil
}

func (s *FeedbackStore) ListForUser(ctx context.Context, userID string) ([]domain.FeedbackEntry, error) {
	const q = `
		SELECT f.id, f.message, f.rating, f.created_at,
		       a.id, a.name, a.profile_pic
		FROM feedback f
		JOIN users a ON a.id = f.author_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	out := []domain.FeedbackEntry{}
	for rows.Next() {
		var (
			e          domain.FeedbackEntry
			idUUID     pgtype.UUID
			authorUUID pgtype.UUID
		)
		if err := rows.Scan(&idUUID, &e.Message, &e.Rating, &e.CreatedAt, &authorUUID, &e.Author.Name, &e.Author.ProfilePic); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		e.ID = uuidOrEmpty(idUUID)
		e.Author.ID = uuidOrEmpty(authorUUID)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return out, nil
}

var _ = pgx.ErrNoRows
