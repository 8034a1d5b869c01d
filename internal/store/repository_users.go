package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/jackc/pgerrcode"
)

type userRepository struct {
	*DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser inserts a new account. The caller supplies the already-hashed
// password in user.Password.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var created models.User
	err := r.DB.QueryRowContext(ctx, createUser, user.Login, user.Password).
		Scan(&created.UserID, &created.Login)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).
			Str("func", "userRepository.CreateUser").
			Str("login", user.Login).
			Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// FindUserByLogin returns the user record and its stored password hash.
func (r *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, string, error) {
	log := logger.FromContext(ctx)

	var user models.User
	var passwordHash string
	err := r.DB.QueryRowContext(ctx, findUserByLogin, login).
		Scan(&user.UserID, &user.Login, &passwordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", ErrNoUserWasFound
		}
		log.Err(err).
			Str("func", "userRepository.FindUserByLogin").
			Str("login", login).
			Msg("failed to query user")
		return models.User{}, "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, passwordHash, nil
}
