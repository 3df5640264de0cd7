package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/givehub/marketplace-api/internal/auth"
	"github.com/givehub/marketplace-api/internal/config"
	"github.com/givehub/marketplace-api/internal/domain"
	"github.com/givehub/marketplace-api/internal/events"
	"github.com/givehub/marketplace-api/internal/repository"
	apperrors "github.com/givehub/marketplace-api/pkg/util/errorutil"
)

const minPasswordLen = 6

// invalidCredentials is the single answer for unknown identifier and wrong
// password alike; responses never reveal which one it was.
func invalidCredentials() error {
	return apperrors.NewUnauthorized("invalid credentials")
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, accounts repository.AccountRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLHours),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account and signs it in. New accounts start as
// role user, unverified.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.Account, string, time.Time, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)

	if email == "" || username == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email, username and password are required")
	}
	if len(password) < minPasswordLen {
		return nil, "", time.Time{}, apperrors.NewValidationError("password must be at least 6 characters")
	}

	// Friendly pre-checks; the unique indexes settle concurrent registrations.
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}
	if _, err := s.accounts.GetByUsername(ctx, username); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("username already taken")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	account := &domain.Account{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Verified:     false,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, "", time.Time{}, apperrors.NewConflict("email already registered")
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, "", time.Time{}, apperrors.NewConflict("username already taken")
		case errors.Is(err, repository.ErrDuplicateAccount):
			return nil, "", time.Time{}, apperrors.NewConflict("account already exists")
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(account)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{
		Email:    account.Email,
		Username: account.Username,
	})

	return account, token, exp, nil
}

// Login authenticates by email or username. Identifiers containing "@" are
// treated as emails.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.Account, string, time.Time, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, "", time.Time{}, invalidCredentials()
	}

	var (
		account *domain.Account
		err     error
	)
	if strings.Contains(identifier, "@") {
		account, err = s.accounts.GetByEmail(ctx, normalizeEmail(identifier))
	} else {
		account, err = s.accounts.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, invalidCredentials()
		}
		return nil, "", time.Time{}, err
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		return nil, "", time.Time{}, invalidCredentials()
	}

	token, exp, err := s.tokenMgr.Issue(account)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// GetAccount loads an account by id.
func (s *AuthService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account")
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts returns every account, admin use only.
func (s *AuthService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// SetVerified flips the verification flag on an account.
func (s *AuthService) SetVerified(ctx context.Context, id string, verified bool) error {
	if err := s.accounts.SetVerified(ctx, id, verified); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("account")
		}
		return err
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType, subjectID, payload))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
