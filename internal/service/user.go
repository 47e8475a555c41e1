package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Observer7203/Online-Store-Test/internal/auth"
	"github.com/Observer7203/Online-Store-Test/internal/domain"
	"github.com/Observer7203/Online-Store-Test/internal/repository"
)

// tokenTTL bounds how long an issued bearer token stays valid.
const tokenTTL = 30 * 24 * time.Hour

// UserService handles registration, login and bearer token resolution.
type UserService struct {
	repo   repository.Querier
	logger *slog.Logger
}

var _ domain.UserService = (*UserService)(nil)

func NewUserService(repo repository.Querier, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register creates an account and issues a bearer token.
func (s *UserService) Register(ctx context.Context, params domain.RegisterParams) (*domain.User, string, error) {
	const op = "user.register"

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, "", domain.NewValidationError(op, "password", "The password must be at least 8 characters.")
		}
		return nil, "", domain.Internal(err, op, "failed to hash password")
	}

	user, err := s.repo.CreateUser(ctx, repository.CreateUserParams{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, "", domain.NewValidationError(op, "email", "The email has already been taken.")
		}
		return nil, "", domain.Internal(err, op, "failed to create user")
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", domain.Internal(err, op, "failed to issue token")
	}

	s.logger.Info("user registered", slog.Int64("user_id", user.ID))
	return &user, token, nil
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	const op = "user.login"

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", domain.Internal(err, op, "failed to load user")
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", domain.Internal(err, op, "failed to verify password")
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", domain.Internal(err, op, "failed to issue token")
	}

	s.logger.Info("user logged in", slog.Int64("user_id", user.ID))
	return &user, token, nil
}

// Logout revokes the presented token. Revoking an unknown token is not an
// error; the outcome is identical.
func (s *UserService) Logout(ctx context.Context, token string) error {
	const op = "user.logout"

	if err := s.repo.DeleteAuthToken(ctx, digestToken(token)); err != nil {
		return domain.Internal(err, op, "failed to revoke token")
	}
	return nil
}

// Authenticate resolves a bearer token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	const op = "user.authenticate"

	user, err := s.repo.GetUserByTokenDigest(ctx, digestToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, domain.Internal(err, op, "failed to resolve token")
	}
	return &user, nil
}

func (s *UserService) issueToken(ctx context.Context, userID int64) (string, error) {
	token, digest, err := generateToken()
	if err != nil {
		return "", err
	}

	err = s.repo.CreateAuthToken(ctx, repository.CreateAuthTokenParams{
		UserID:      userID,
		TokenDigest: digest,
		ExpiresAt:   time.Now().Add(tokenTTL),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}
