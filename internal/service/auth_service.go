package service

import (
	"context"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/harmonylane/lessonbook/internal/domain"
	"github.com/harmonylane/lessonbook/internal/mailer"
	"github.com/harmonylane/lessonbook/internal/repository"
	"github.com/harmonylane/lessonbook/pkg/auth"
	"github.com/harmonylane/lessonbook/pkg/config"
	"github.com/harmonylane/lessonbook/pkg/events"
	"github.com/harmonylane/lessonbook/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.SignUpRequest) (*domain.UserInfo, error)
	Login(ctx context.Context, req *domain.SignInRequest) (*domain.SignInResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	Refresh(ctx context.Context, refreshToken string) (*domain.SignInResponse, error)
	Me(ctx context.Context, userID int64) (*domain.UserInfo, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, req *domain.PasswordResetConfirm) error
}

type authService struct {
	users    repository.UserRepository
	tokens   repository.VerifyRepository
	notifier *mailer.Notifier
	bus      events.Publisher
	cfg      config.AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	tokens repository.VerifyRepository,
	notifier *mailer.Notifier,
	bus events.Publisher,
	cfg config.AuthConfig,
) AuthService {
	return &authService{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		bus:      bus,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.SignUpRequest) (*domain.UserInfo, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, req, hash)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.EmailVerificationTTL)
	if err := s.tokens.CreateEmailVerification(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}
	if err := s.notifier.SendVerification(user.Email, user.FullName, token); err != nil {
		// Registration stands even if the email bounces; the user can
		// ask for a resend.
		logger.ErrorContext(ctx, "verification email failed", "user_id", user.ID, "error", err)
	}

	s.publishIdentity(ctx, events.UserRegistered, user)

	return user.ToUserInfo(), nil
}

func (s *authService) Login(ctx context.Context, req *domain.SignInRequest) (*domain.SignInResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	match, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.publishIdentity(ctx, events.UserSignedIn, user)

	return resp, nil
}

func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	// Tokens are stateless; logout just broadcasts the identity change.
	return s.bus.Publish(ctx, events.UserSignedOut, events.UserIdentityEvent{
		UserID: claims.Sub,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
		At:     time.Now(),
	})
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.SignInResponse, error) {
	claims, err := auth.Parse(refreshToken, s.cfg.JWTSecret)
	if err != nil || claims.Role != "refresh" {
		return nil, ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, claims.Sub)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrTokenInvalid
	}

	return s.issueTokens(user)
}

func (s *authService) Me(ctx context.Context, userID int64) (*domain.UserInfo, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user.ToUserInfo(), nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.tokens.ConsumeEmailVerification(ctx, token)
	if err != nil {
		return err
	}
	if userID == 0 {
		return ErrTokenInvalid
	}
	return s.users.MarkVerified(ctx, userID)
}

// ResendVerification issues a fresh verification token. Unknown and
// already-verified addresses get the same silent success as password
// reset requests.
func (s *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil || user.IsVerified {
		return nil
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.EmailVerificationTTL)
	if err := s.tokens.CreateEmailVerification(ctx, user.ID, token, expiresAt); err != nil {
		return err
	}
	return s.notifier.SendVerification(user.Email, user.FullName, token)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		// Same response whether or not the address exists.
		return nil
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.PasswordResetTTL)
	if err := s.tokens.CreatePasswordReset(ctx, user.ID, token, expiresAt); err != nil {
		return err
	}
	return s.notifier.SendPasswordReset(user.Email, user.FullName, token)
}

func (s *authService) ConfirmPasswordReset(ctx context.Context, req *domain.PasswordResetConfirm) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userID, err := s.tokens.ConsumePasswordReset(ctx, req.Token)
	if err != nil {
		return err
	}
	if userID == 0 {
		return ErrTokenInvalid
	}

	hash, err := argon2id.CreateHash(req.NewPassword, argon2id.DefaultParams)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userID, hash)
}

func (s *authService) issueTokens(user *domain.User) (*domain.SignInResponse, error) {
	access, err := auth.NewAccessToken(user.ID, user.Email, user.FullName, user.Role, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.NewRefreshToken(user.ID, user.Email, s.cfg.JWTSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &domain.SignInResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.AccessTokenTTL.Seconds()),
		User:         user.ToUserInfo(),
	}, nil
}

func (s *authService) publishIdentity(ctx context.Context, subject string, user *domain.User) {
	err := s.bus.Publish(ctx, subject, events.UserIdentityEvent{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.FullName,
		Role:   user.Role,
		At:     time.Now(),
	})
	if err != nil {
		logger.ErrorContext(ctx, "identity event publish failed", "subject", subject, "error", err)
	}
}
