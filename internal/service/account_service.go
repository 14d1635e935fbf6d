package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mnazarko/movie-store/internal/auth"
	"github.com/mnazarko/movie-store/internal/config"
	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/email"
	"github.com/mnazarko/movie-store/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmailInUse            = errors.New("a user with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountNotActivated   = errors.New("user account is not activated")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired activation token")
	ErrAlreadyActive         = errors.New("user account is already active")
	ErrRefreshTokenNotFound  = errors.New("refresh token not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidEmailOrToken   = errors.New("invalid email or token")

	// ErrInvalidToken is the issuer-level failure (bad signature or expired
	// JWT), re-exported so callers map it without importing the auth package.
	ErrInvalidToken = auth.ErrInvalidToken
)

// AccountService drives the account lifecycle state machine:
// UNREGISTERED -> PENDING_ACTIVATION -> ACTIVE, with no way back. All
// durable state lives in the repository; the service holds no cross-request
// state.
type AccountService struct {
	repo   repository.AccountRepository
	hasher auth.PasswordHasher
	issuer auth.TokenIssuer
	sender email.Sender
	cfg    *config.Config
}

func NewAccountService(
	repo repository.AccountRepository,
	hasher auth.PasswordHasher,
	issuer auth.TokenIssuer,
	sender email.Sender,
	cfg *config.Config,
) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		sender: sender,
		cfg:    cfg,
	}
}

// RegisterResult carries the public projection of the new user plus the raw
// activation token for callers that orchestrate email delivery themselves.
type RegisterResult struct {
	User            *domain.User
	ActivationToken string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Register creates a pending-activation account. The existence pre-check is
// an optimization; the email unique constraint is the final authority under
// concurrent registration. Activation email delivery is best-effort.
func (s *AccountService) Register(ctx context.Context, emailAddr, password string) (*RegisterResult, error) {
	existing, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	group, err := s.repo.GetOrCreateGroup(ctx, domain.GroupUser)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	tokenValue, err := auth.NewOpaqueToken()
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        emailAddr,
		PasswordHash: hash,
		IsActive:     false,
		GroupID:      group.ID,
	}
	token := &domain.ActivationToken{
		Token:     tokenValue,
		ExpiresAt: time.Now().UTC().Add(s.cfg.ActivationTokenTTL),
	}

	if err := s.repo.CreateUserWithActivationToken(ctx, user, token); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	if err := s.sender.SendActivationEmail(user.Email, tokenValue); err != nil {
		log.Printf("WARN [AccountService.Register] failed to send activation email to %s: %v", user.Email, err)
	}

	return &RegisterResult{User: user, ActivationToken: tokenValue}, nil
}

// Login authenticates an active account and returns a signed access/refresh
// token pair, persisting the refresh token. Absent user and wrong password
// are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, emailAddr, password string) (*TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountNotActivated
	}

	refreshToken, err := s.issuer.CreateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().UTC().AddDate(0, 0, s.cfg.RefreshTokenDays)
	if err := s.repo.CreateRefreshToken(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, err
	}

	accessToken, err := s.issuer.CreateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Activate consumes an activation token. The user is checked before the
// token, so a replay against an already-active account deterministically
// returns ErrAlreadyActive; any lingering token is deleted either way.
func (s *AccountService) Activate(ctx context.Context, emailAddr, token string) error {
	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}

	if user.IsActive {
		if err := s.repo.DeleteActivationTokensForUser(ctx, user.ID); err != nil {
			return err
		}
		return ErrAlreadyActive
	}

	record, err := s.repo.GetActivationToken(ctx, emailAddr, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}

	if record.Expired(time.Now()) {
		if err := s.repo.DeleteActivationToken(ctx, record.ID); err != nil {
			return err
		}
		return ErrInvalidOrExpiredToken
	}

	if err := s.repo.ActivateUser(ctx, user.ID); err != nil {
		return err
	}
	return s.repo.DeleteActivationToken(ctx, record.ID)
}

// Refresh exchanges a refresh token for a new access token. The token is not
// rotated: the stored record stays valid until its expiry or server-side
// deletion.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.issuer.DecodeRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.GetRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRefreshTokenNotFound
		}
		return "", err
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	return s.issuer.CreateAccessToken(userID)
}

// RequestPasswordReset never reports whether the email exists. For an
// active account it replaces any prior reset token and sends the new one
// best-effort.
func (s *AccountService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !user.IsActive {
		return nil
	}

	tokenValue, err := auth.NewOpaqueToken()
	if err != nil {
		return err
	}

	token := &domain.PasswordResetToken{
		UserID:    user.ID,
		Token:     tokenValue,
		ExpiresAt: time.Now().UTC().Add(s.cfg.PasswordResetTokenTTL),
	}
	if err := s.repo.ReplaceResetToken(ctx, token); err != nil {
		return err
	}

	if err := s.sender.SendPasswordResetEmail(user.Email, tokenValue); err != nil {
		log.Printf("WARN [AccountService.RequestPasswordReset] failed to send reset email to %s: %v", user.Email, err)
	}
	return nil
}

// ResetPassword collapses every failure mode into ErrInvalidEmailOrToken so
// the response can't be used as an oracle, while still consuming any stored
// token it finds on mismatch or expiry.
func (s *AccountService) ResetPassword(ctx context.Context, emailAddr, token, newPassword string) error {
	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidEmailOrToken
		}
		return err
	}
	if !user.IsActive {
		return ErrInvalidEmailOrToken
	}

	record, err := s.repo.GetResetTokenForUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidEmailOrToken
		}
		return err
	}

	if record.Token != token || record.Expired(time.Now()) {
		if err := s.repo.DeleteResetToken(ctx, record.ID); err != nil {
			return err
		}
		return ErrInvalidEmailOrToken
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	return s.repo.DeleteResetToken(ctx, record.ID)
}

// GetUserByID is used by the auth middleware and profile handlers.
func (s *AccountService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes a single refresh token; missing tokens are not an error.
func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}
