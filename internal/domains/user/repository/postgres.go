package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"publishing-backend/internal/domains/user/model"
	"publishing-backend/internal/shared/identity"
	"publishing-backend/pkg/database"
)

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (id, email, password_hash, display_name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING created_at, updated_at`

		err := tx.QueryRow(ctx, query,
			user.ID, user.Email, user.PasswordHash, user.DisplayName,
		).Scan(&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return model.ErrEmailAlreadyExists
			}
			return fmt.Errorf("insert user: %w", err)
		}

		return insertRoles(ctx, tx, user.ID, user.Roles)
	})
}

func insertRoles(ctx context.Context, tx pgx.Tx, userID uuid.UUID, roles []identity.Role) error {
	for _, role := range roles {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, role.String(),
		); err != nil {
			return fmt.Errorf("insert role %s: %w", role, err)
		}
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "email = $1", email)
}

func (r *postgresUserRepository) getBy(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, password_hash, display_name, created_at, updated_at
		FROM users
		WHERE %s`, cond)

	var user model.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	roles, err := r.loadRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return &user, nil
}

func (r *postgresUserRepository) loadRoles(ctx context.Context, userID uuid.UUID) ([]identity.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect roles: %w", err)
	}

	return identity.ParseRoles(names), nil
}

func (r *postgresUserRepository) ReplaceRoles(ctx context.Context, userID uuid.UUID, roles []identity.Role) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `SELECT 1 FROM users WHERE id = $1`, userID)
		if err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrUserNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("clear roles: %w", err)
		}

		return insertRoles(ctx, tx, userID, roles)
	})
}

func (r *postgresUserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	query := `
		SELECT id, user_id, bio, avatar_url, created_at, updated_at
		FROM profiles
		WHERE user_id = $1`

	var p model.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Bio, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Missing profile is a valid state.
			return nil, nil
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}

	return &p, nil
}

func (r *postgresUserRepository) UpsertProfile(ctx context.Context, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, bio, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET bio = EXCLUDED.bio, avatar_url = EXCLUDED.avatar_url, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		profile.ID, profile.UserID, profile.Bio, profile.AvatarURL,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
