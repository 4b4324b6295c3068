package services

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/app/models/dto"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
	pkgAuth "github.com/jiripapousek/classwall/internal/pkg/auth"
	"github.com/jiripapousek/classwall/internal/pkg/notify"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfoResponse, error)
	GetUserInfo(ctx context.Context, userID primitive.ObjectID) (*dto.UserInfoResponse, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	users      UserStore
	jwtService *pkgAuth.JWTService
	notifier   notify.Notifier
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, jwtService *pkgAuth.JWTService, notifier notify.Notifier, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:      users,
		jwtService: jwtService,
		notifier:   notifier,
		logger:     logger,
	}
}

// Login verifies credentials and issues a bearer token. Failed attempts
// against an existing account are reported to the notification
// side-channel; delivery failures are logged and never surfaced.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		// Unknown usernames and bad passwords are indistinguishable to the caller
		return nil, apperrors.ErrInvalidCredentials
	}

	if !pkgAuth.CheckPassword(user.HashedPassword, req.Password) {
		s.reportFailedLogin(user.Username)
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("Failed to generate access token")
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// reportFailedLogin delivers the failed-login event in the background
func (s *authServiceImpl) reportFailedLogin(username string) {
	go func() {
		// Deliberately detached from the request context: the request is
		// already answered when this runs.
		if err := s.notifier.NotifyFailedLogin(context.Background(), username); err != nil {
			s.logger.Warn().Err(err).Str("username", username).Msg("Failed to deliver failed-login notification")
		}
	}()
}

// Register creates a new user account
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfoResponse, error) {
	hashedPassword, err := pkgAuth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	user, err := s.users.Create(ctx, &models.User{
		Username:       req.Username,
		HashedPassword: hashedPassword,
		IsTeacher:      req.IsTeacher,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", user.Username).Bool("isTeacher", user.IsTeacher).Msg("User registered")
	return dto.NewUserInfoResponse(user), nil
}

// GetUserInfo returns the caller's public profile
func (s *authServiceImpl) GetUserInfo(ctx context.Context, userID primitive.ObjectID) (*dto.UserInfoResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserInfoResponse(user), nil
}
