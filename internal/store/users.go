package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/carelink/carelink-go/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrUserNotFound marks a lookup for a user the local table has never seen
var ErrUserNotFound = errors.New("user not found in local store")

// UserStore caches remote user identities on the device. The message
// store resolves display names against it, and its cascade rules clean
// up a user's local data when the account disappears.
type UserStore struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewUserStore creates a new UserStore
func NewUserStore(db *pgxpool.Pool, logger *zap.Logger) *UserStore {
	return &UserStore{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts or refreshes a cached user row
func (s *UserStore) Upsert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, username, email, first_name, last_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			role = EXCLUDED.role
	`

	_, err := s.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.CreatedAt,
	)

	if err != nil {
		s.logger.Error("failed to upsert user",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// FindByID retrieves a cached user by id
func (s *UserStore) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `
		SELECT id, username, email, first_name, last_name, role, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
		}
		s.logger.Error("failed to find user", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// DisplayNames resolves ids to full display names in one query. Ids the
// table has never seen are simply absent from the result.
func (s *UserStore) DisplayNames(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	if len(userIDs) == 0 {
		return map[int64]string{}, nil
	}

	query := `
		SELECT id, username, first_name, last_name
		FROM users
		WHERE id = ANY($1)
	`

	rows, err := s.db.Query(ctx, query, userIDs)
	if err != nil {
		s.logger.Error("failed to resolve display names", zap.Error(err))
		return nil, fmt.Errorf("failed to resolve display names: %w", err)
	}
	defer rows.Close()

	names := make(map[int64]string, len(userIDs))
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName); err != nil {
			s.logger.Error("failed to scan user row", zap.Error(err))
			continue
		}
		names[u.ID] = u.FullName()
	}

	if err := rows.Err(); err != nil {
		s.logger.Error("error iterating users", zap.Error(err))
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return names, nil
}

// Delete removes a cached user. The schema cascades the user's
// appointments, vitals, feedback and messages.
func (s *UserStore) Delete(ctx context.Context, userID int64) error {
	result, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		s.logger.Error("failed to delete user",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", ErrUserNotFound, userID)
	}

	return nil
}
