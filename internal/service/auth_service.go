package service

import (
	"errors"

	"github.com/vishdevs/inventory-backend/internal/model"
	"github.com/vishdevs/inventory-backend/internal/repository"
	"github.com/vishdevs/inventory-backend/pkg/jwt"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *zap.Logger) AuthService {
	return &authService{userRepo: userRepo, logger: logger}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		s.logger.Error("token generation failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("email", email))

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
