// Package service implements Inkwell's authentication core: registration,
// login, and per-request identity resolution.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellcms/inkwell/internal/auth"
	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/store"
)

var (
	// ErrAlreadyRegistered is returned by Register for an email that already
	// has an account. Safe to disclose: the caller supplied the email.
	ErrAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned by Login for every credential
	// failure. Unknown email, wrong password, and disabled account are
	// deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrUnauthorized is returned by Authenticate for every token failure.
	// The internal cause is logged but never surfaced.
	ErrUnauthorized = errors.New("could not validate credentials")
)

// DefaultTokenTTL bounds a token's lifetime. Tokens are stateless, so this
// is also the only revocation mechanism.
const DefaultTokenTTL = 8 * time.Hour

// AuthService composes the password hasher, token codec, and credential
// store into the registration, login, and request-authentication flows.
type AuthService struct {
	store  store.AdminStore
	hasher *auth.PasswordHasher
	codec  *auth.TokenCodec
	ttl    time.Duration
	logger *slog.Logger
}

// NewAuthService wires the auth core. A zero ttl falls back to DefaultTokenTTL.
func NewAuthService(admins store.AdminStore, hasher *auth.PasswordHasher, codec *auth.TokenCodec, ttl time.Duration, logger *slog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		store:  admins,
		hasher: hasher,
		codec:  codec,
		ttl:    ttl,
		logger: logger,
	}
}

// Register creates a new admin account and returns a session token for it.
// Uniqueness is enforced by the store's unique email index rather than a
// lookup-then-insert sequence, so concurrent registrations with the same
// email cannot both succeed.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	if name == "" {
		name = model.DisplayNameFor(email)
	}
	admin := &model.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Name:         name,
		IsActive:     true,
	}

	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return "", ErrAlreadyRegistered
		}
		return "", fmt.Errorf("create admin: %w", err)
	}

	token, err := s.codec.Issue(email, s.ttl)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Login verifies the credentials and returns a session token. A failed login
// mutates nothing; a successful one records last_login best-effort.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.store.FindAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find admin: %w", err)
	}

	if !s.hasher.Verify(password, admin.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	if !admin.IsActive {
		return "", ErrInvalidCredentials
	}

	// Recording the login time must not fail the login itself.
	if err := s.store.UpdateAdminLastLogin(ctx, email, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to record last login", "email", email, "error", err)
	}

	token, err := s.codec.Issue(email, s.ttl)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Authenticate resolves the identity behind a presented bearer token. Every
// failure mode collapses to ErrUnauthorized; the specific cause is only
// logged, keeping the external response free of oracle signals.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.AdminUser, error) {
	subject, err := s.codec.Decode(token)
	if err != nil {
		s.logger.Debug("token rejected", "cause", err)
		return nil, ErrUnauthorized
	}

	admin, err := s.store.FindAdminByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The account may have been removed after issuance; stateless
			// tokens are not invalidated when their subject disappears.
			s.logger.Debug("token subject unknown", "subject", subject)
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if !admin.IsActive {
		s.logger.Debug("token subject inactive", "subject", subject)
		return nil, ErrUnauthorized
	}

	admin.PasswordHash = ""
	return admin, nil
}

// TokenTTL returns the configured token lifetime.
func (s *AuthService) TokenTTL() time.Duration {
	return s.ttl
}
