package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/classmart/classmart-backend/internal/mailer"
	"github.com/classmart/classmart-backend/internal/users"
	pkgauth "github.com/classmart/classmart-backend/pkg/auth"
	"github.com/classmart/classmart-backend/pkg/auth/session"
	"github.com/classmart/classmart-backend/pkg/config"
	"github.com/classmart/classmart-backend/pkg/db"
	"github.com/classmart/classmart-backend/pkg/db/models"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/classmart/classmart-backend/pkg/logger"
	"github.com/classmart/classmart-backend/pkg/security"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type verifyTokenStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	VerifyTokenKey(token string) string
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	UserRepo    *users.Repository
	Sessions    *session.Manager
	VerifyStore verifyTokenStore
	Mailer      mailer.Sender
	JWTCfg      config.JWTConfig
	PasswordCfg config.PasswordConfig
	AppBaseURL  string
	Logger      *logger.Logger
}

// Service exposes login, registration, and email verification.
type Service interface {
	Login(ctx context.Context, input LoginInput) (LoginDTO, error)
	Logout(ctx context.Context, tokenID string) error
	Register(ctx context.Context, input RegisterInput) (RegisterDTO, error)
	VerifyEmail(ctx context.Context, token string) error
}

type service struct {
	userRepo    *users.Repository
	sessions    *session.Manager
	verifyStore verifyTokenStore
	mailer      mailer.Sender
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	appBaseURL  string
	logg        *logger.Logger
}

// NewService builds an auth service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	if params.VerifyStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "verify token store is required")
	}
	if params.Mailer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mailer is required")
	}
	return &service{
		userRepo:    params.UserRepo,
		sessions:    params.Sessions,
		verifyStore: params.VerifyStore,
		mailer:      params.Mailer,
		jwtCfg:      params.JWTCfg,
		passwordCfg: params.PasswordCfg,
		appBaseURL:  strings.TrimRight(params.AppBaseURL, "/"),
		logg:        params.Logger,
	}, nil
}

// Login checks the credentials and mints a session-backed JWT.
func (s *service) Login(ctx context.Context, input LoginInput) (LoginDTO, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return LoginDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return LoginDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return LoginDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "account is disabled")
	}

	jti := session.NewTokenID()
	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID:  user.ID,
		IsStaff: user.IsStaff,
		JTI:     jti,
	})
	if err != nil {
		return LoginDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}
	if err := s.sessions.Create(ctx, jti, user.ID); err != nil {
		return LoginDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "user_id", user.ID), "failed to record last login")
	}

	return LoginDTO{
		Token:   token,
		UserID:  user.ID,
		Usuario: user.Username,
		IsStaff: user.IsStaff,
	}, nil
}

// Logout revokes the server-side session for the token.
func (s *service) Logout(ctx context.Context, tokenID string) error {
	if err := s.sessions.Revoke(ctx, tokenID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// Register creates an unverified account and emails a verification link.
func (s *service) Register(ctx context.Context, input RegisterInput) (RegisterDTO, error) {
	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return RegisterDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := models.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if db.IsUniqueViolation(err, "usuarios_username_key", "usuarios_email_key") {
			return RegisterDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username or email already in use")
		}
		return RegisterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	verifyToken := uuid.NewString()
	key := s.verifyStore.VerifyTokenKey(verifyToken)
	if err := s.verifyStore.Set(ctx, key, strconv.FormatInt(user.ID, 10), s.jwtCfg.VerifyTTL()); err != nil {
		return RegisterDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store verify token")
	}

	link := fmt.Sprintf("%s/verify_email/%s", s.appBaseURL, verifyToken)
	body := fmt.Sprintf("Bienvenido a ClasSmart, %s.\n\nConfirma tu correo visitando:\n%s\n", user.Username, link)
	if err := s.mailer.Send(ctx, user.Email, "Confirma tu correo", body); err != nil {
		// the account exists either way; verification can be retried
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "user_id", user.ID), "verification email failed")
		}
	}

	return RegisterDTO{User: users.ToDTO(user)}, nil
}

// VerifyEmail redeems the token stored at registration time.
func (s *service) VerifyEmail(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "verification token is required")
	}

	key := s.verifyStore.VerifyTokenKey(token)
	stored, err := s.verifyStore.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "verification token is invalid or expired")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load verify token")
	}

	userID, err := strconv.ParseInt(stored, 10, 64)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode verify token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	user.EmailVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark email verified")
	}

	_ = s.verifyStore.Del(ctx, key)
	return nil
}
