package postgres

import (
	"context"
	"fmt"

	"skillswapserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserSearchStore struct {
	pool *pgxpool.Pool
}

func NewUserSearchStore(pool *pgxpool.Pool) *UserSearchStore {
	return &UserSearchStore{pool: pool}
}

// Only public profiles are discoverable. The caller (when known) is excluded
// so members never see themselves in browse results.
const publicUsersWhere = `
	WHERE visibility = 'Public'
	  AND ($1 = '' OR id::text <> $1)
	  AND ($2 = '' OR name ILIKE '%' || $2 || '%'
	       OR EXISTS (SELECT 1 FROM unnest(skills_offered) AS so WHERE so ILIKE '%' || $2 || '%')
	       OR EXISTS (SELECT 1 FROM unnest(skills_wanted) AS sw WHERE sw ILIKE '%' || $2 || '%'))
	  AND ($3 = '' OR availability = $3)
`

func (s *UserSearchStore) ListPublicUsers(ctx context.Context, excludeUserID, search, availability string, limit int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	const q = `
		SELECT ` + userColumns + `
		FROM users
	` + publicUsersWhere + `
		ORDER BY created_at DESC
		LIMIT $4
	`

	rows, err := s.pool.Query(ctx, q, excludeUserID, search, availability, limit)
	if err != nil {
		return nil, fmt.Errorf("list public users: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (s *UserSearchStore) SearchPublicUsers(ctx context.Context, excludeUserID, query, availability string, limit, offset int) ([]domain.User, int, error) {
	if limit <= 0 || limit > 50 {
		limit = 6
	}
	if offset < 0 {
		offset = 0
	}

	const countQ = `
		SELECT count(*)
		FROM users
	` + publicUsersWhere

	var total int
	if err := s.pool.QueryRow(ctx, countQ, excludeUserID, query, availability).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count public users: %w", err)
	}

	const q = `
		SELECT ` + userColumns + `
		FROM users
	` + publicUsersWhere + `
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`

	rows, err := s.pool.Query(ctx, q, excludeUserID, query, availability, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search public users: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func collectUsers(rows pgx.Rows) ([]domain.User, error) {
	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}
