// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// authService is the concrete implementation of [AuthService]. Passwords are
// stored as Argon2id hashes; sessions are stateless JWTs.
type authService struct {
	users  store.UserRepository
	hasher crypto.PasswordHasher

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT. Tokens
	// whose issuer does not match are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given
// UserRepository and populated with security parameters from cfg. The
// returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(users store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:         users,
		hasher:        crypto.NewPasswordHasher(),
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// RegisterUser implements [AuthService]. It validates the credentials, hashes
// the password and persists the account. Returns [ErrValidation] on empty
// credentials and [ErrLoginAlreadyExists] when the login is taken.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		return models.User{}, fmt.Errorf("%w: login and password are required", ErrValidation)
	}

	hashed, err := a.hasher.Hash(user.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := a.users.CreateUser(ctx, models.User{Login: user.Login, Password: hashed})
	if err != nil {
		if errors.Is(err, store.ErrLoginAlreadyExists) {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).
			Str("func", "authService.RegisterUser").
			Str("login", user.Login).
			Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// Login implements [AuthService]. It looks the account up by login and
// verifies the password against the stored hash. A missing account and a
// wrong password are indistinguishable to the caller ([ErrWrongPassword]).
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		return models.User{}, fmt.Errorf("%w: login and password are required", ErrValidation)
	}

	found, hash, err := a.users.FindUserByLogin(ctx, user.Login)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrWrongPassword
		}
		log.Err(err).
			Str("func", "authService.Login").
			Str("login", user.Login).
			Msg("user lookup ended with error")
		return models.User{}, fmt.Errorf("user lookup ended with error: %w", err)
	}

	ok, err := a.hasher.Verify(user.Password, hash)
	if err != nil {
		return models.User{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return models.User{}, ErrWrongPassword
	}

	return found, nil
}

// CreateToken implements [AuthService].
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// ParseToken implements [AuthService].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, fmt.Errorf("parse token: %w", err)
	}
	return token, nil
}
