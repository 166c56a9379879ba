package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"runmind/internal/models/db_models"
	"runmind/internal/models/request_models"
	resp "runmind/internal/models/response_models"
	"runmind/internal/repositories"
	"runmind/pkg/log"
	mem "runmind/pkg/memcache"
	"runmind/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (*resp.AccountLoginResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*resp.AccountLoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*resp.AccountResponse, error)
	// ForgotPassword mails a reset link when a password account exists for
	// email. It reports success either way.
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req request_models.ResetPasswordRequest) error
}

const (
	resetTokenTTL   = 30 * time.Minute
	resetTokenBytes = 32
)

type AccountService struct {
	users  repositories.UserRepository
	tokens *utils.TokenManager
	resets mem.ResetTokenStore
	mailer IMailService
}

func NewAccountService(users repositories.UserRepository, tokens *utils.TokenManager, resets mem.ResetTokenStore, mailer IMailService) AccountServiceInterface {
	return &AccountService{users: users, tokens: tokens, resets: resets, mailer: mailer}
}

func (s *AccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*resp.AccountLoginResponse, error) {
	if !db_models.IsValidRole(req.Role) {
		return nil, utils.Validation("role must be %q or %q", db_models.RoleRunner, db_models.RoleCoach)
	}

	email := normalizeEmail(req.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.Internal(err, "failed to check email")
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.Internal(err, "failed to hash password")
	}

	user := &db_models.User{
		Name:         req.DisplayName,
		Email:        &email,
		PasswordHash: &hash,
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, utils.Internal(err, "failed to create account")
	}

	log.Log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("account registered")
	return s.issue(user)
}

func (s *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*resp.AccountLoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, utils.Internal(err, "failed to load account")
	}
	if user == nil || user.PasswordHash == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(*user.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AccountService) Me(ctx context.Context, userID uuid.UUID) (*resp.AccountResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.Internal(err, "failed to load account")
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	out := resp.NewAccountResponse(user)
	return &out, nil
}

func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return utils.Internal(err, "failed to load account")
	}
	// Strava-only users have no password to reset.
	if user == nil || user.PasswordHash == nil || user.Email == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return utils.Internal(err, "failed to generate reset token")
	}
	s.resets.Set(token, user.ID.String(), resetTokenTTL)

	if err := s.mailer.SendPasswordReset(*user.Email, token); err != nil {
		log.Log.WithField("user_id", user.ID).WithError(err).Warn("failed to queue password reset email")
	}
	return nil
}

func (s *AccountService) ResetPassword(ctx context.Context, req request_models.ResetPasswordRequest) error {
	owner, ok := s.resets.Consume(req.Token)
	if !ok {
		return utils.ErrInvalidResetToken
	}
	userID, err := uuid.Parse(owner)
	if err != nil {
		return utils.ErrInvalidResetToken
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.Internal(err, "failed to hash password")
	}
	found, err := s.users.UpdatePassword(ctx, userID, hash)
	if err != nil {
		return utils.Internal(err, "failed to update password")
	}
	if !found {
		return utils.ErrUserNotFound
	}

	log.Log.WithField("user_id", userID).Info("password reset")
	return nil
}

func (s *AccountService) issue(user *db_models.User) (*resp.AccountLoginResponse, error) {
	token, err := s.tokens.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, utils.Internal(err, "failed to issue token")
	}
	return &resp.AccountLoginResponse{Token: token, User: resp.NewAccountResponse(user)}, nil
}
