package user

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"todo-server/internal/utils/apperrors"
)

// bcrypt rejects inputs longer than 72 bytes, so passwords are truncated
// before hashing and verification alike.
const maxPasswordBytes = 72

// Service handles registration and credential verification.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "user_service").Logger(),
	}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email    string
	Password string
	Name     *string
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.New(apperrors.KindValidation, "email_required", "email must not be empty")
	}
	if input.Password == "" {
		return nil, apperrors.New(apperrors.KindValidation, "password_required", "password must not be empty")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "user_lookup_failed", "failed to look up user")
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.KindValidation, "email_taken", "Email already registered")
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "password_hash_failed", "failed to hash password")
	}

	u := &User{
		PublicID:       uuid.NewString(),
		Email:          email,
		Name:           input.Name,
		HashedPassword: hashed,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "user_create_failed", "failed to create user")
	}
	s.logger.Info().Str("user_id", u.PublicID).Msg("user registered")
	return u, nil
}

// Authenticate verifies email/password credentials and returns the account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "user_lookup_failed", "failed to look up user")
	}
	if u == nil || !verifyPassword(u.HashedPassword, password) {
		return nil, apperrors.New(apperrors.KindUnauthorized, "bad_credentials", "Incorrect email or password")
	}
	return u, nil
}

// GetByPublicID resolves a user from the identifier carried in tokens.
func (s *Service) GetByPublicID(ctx context.Context, publicID string) (*User, error) {
	u, err := s.repo.FindByPublicID(ctx, publicID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindInternal, "user_lookup_failed", "failed to look up user")
	}
	if u == nil {
		return nil, apperrors.New(apperrors.KindUnauthorized, "unknown_user", "unknown user")
	}
	return u, nil
}

func hashPassword(password string) (string, error) {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	hashed, err := bcrypt.GenerateFromPassword(b, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func verifyPassword(hashed, password string) bool {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), b) == nil
}
