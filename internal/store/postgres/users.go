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

type UsersStore struct {
	pool *pgxpool.Pool
}

func NewUsersStore(pool *pgxpool.Pool) *UsersStore {
	return &UsersStore{pool: pool}
}

const userColumns = `id, name, email, location, profile_pic, skills_offered, skills_wanted, availability, visibility, rating, created_at, updated_at`

func (s *UsersStore) CreateUser(ctx context.Context, name, email, passwordHash string) (domain.User, error) {
	const q = `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	row := s.pool.QueryRow(ctx, q, name, email, passwordHash)
	u, err := scanUser(row)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" && pgerr.ConstraintName == "users_email_uq" {
			return domain.User{}, domain.ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *UsersStore) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	u, err := scanUser(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

func (s *UsersStore) GetUserByEmail(ctx context.Context, email string) (domain.UserWithPassword, error) {
	const q = `
		SELECT ` + userColumns + `, password_hash
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	var (
		u        domain.UserWithPassword
		idUUID   pgtype.UUID
		location pgtype.Text
		offered  pgtype.FlatArray[string]
		wanted   pgtype.FlatArray[string]
	)
	err := s.pool.QueryRow(ctx, q, email).Scan(
		&idUUID,
		&u.Name,
		&u.Email,
		&location,
		&u.ProfilePic,
		&offered,
		&wanted,
		&u.Availability,
		&u.Visibility,
		&u.Rating,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserWithPassword{}, domain.ErrNotFound
		}
		return domain.UserWithPassword{}, fmt.Errorf("get user by email: %w", err)
	}

	u.ID = uuidOrEmpty(idUUID)
	u.Location = textOrEmpty(location)
	u.SkillsOffered = textArrayOrEmpty(offered)
	u.SkillsWanted = textArrayOrEmpty(wanted)
	return u, nil
}

// UpdateProfile applies the non-nil fields and returns the fresh row.
func (s *UsersStore) UpdateProfile(ctx context.Context, userID string, p domain.ProfileUpdate) (domain.User, error) {
	const q = `
		UPDATE users
		SET name           = COALESCE($2, name),
		    location       = COALESCE($3, location),
		    profile_pic    = COALESCE($4, profile_pic),
		    skills_offered = COALESCE($5::text[], skills_offered),
		    skills_wanted  = COALESCE($6::text[], skills_wanted),
		    availability   = COALESCE($7, availability),
		    visibility     = COALESCE($8, visibility),
		    updated_at     = now()
		WHERE id = $1
		RETURNING ` + userColumns

	row := s.pool.QueryRow(ctx, q, userID,
		p.Name,
		p.Location,
		p.ProfilePic,
		p.SkillsOffered,
		p.SkillsWanted,
		availabilityArg(p.Availability),
		visibilityArg(p.Visibility),
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u        domain.User
		idUUID   pgtype.UUID
		location pgtype.Text
		offered  pgtype.FlatArray[string]
		wanted   pgtype.FlatArray[string]
	)
	err := row.Scan(
		&idUUID,
		&u.Name,
		&u.Email,
		&location,
		&u.ProfilePic,
		&offered,
		&wanted,
		&u.Availability,
		&u.Visibility,
		&u.Rating,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}

	u.ID = uuidOrEmpty(idUUID)
	u.Location = textOrEmpty(location)
	u.SkillsOffered = textArrayOrEmpty(offered)
	u.SkillsWanted = textArrayOrEmpty(wanted)
	return u, nil
}

func availabilityArg(a *domain.Availability) any {
	if a == nil {
		return nil
	}
	return string(*a)
}

func visibilityArg(v *domain.Visibility) any {
	if v == nil {
		return nil
	}
	return string(*v)
}
