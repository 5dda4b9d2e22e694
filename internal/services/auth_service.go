package services

import (
	"errors"

	"chainwork_backend/internal/auth"
	"chainwork_backend/internal/email"
	"chainwork_backend/internal/logger"
	"chainwork_backend/internal/models"
	"chainwork_backend/internal/repositories"
	"chainwork_backend/internal/services/dto"
	"chainwork_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	mailer   email.Sender
}

func NewAuthService(userRepo repositories.UserRepository, mailer email.Sender) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, mailer: mailer}
}

func (s *AuthServiceImpl) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Status:       models.UserStatusActive,
	}

	// The unique index on email is the source of truth; a concurrent
	// register with the same address loses here, not at a pre-check.
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	go func() {
		if err := s.mailer.Send(user.Email, "Welcome to ChainWork", email.WelcomeBody(user.Name)); err != nil {
			logger.WithError(err).Warn("welcome email failed", "user_id", user.ID)
		}
	}()

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user, true),
	}, nil
}

func (s *AuthServiceImpl) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		// Same error for unknown email and wrong password.
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user, true),
	}, nil
}
