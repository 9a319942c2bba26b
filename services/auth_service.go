package services

import (
	"context"
	"fmt"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/utils"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required,max=100"`
	Password string `validate:"required,min=6"`
}

type AuthService struct {
	codec *utils.TokenCodec
}

func NewAuthService(codec *utils.TokenCodec) *AuthService {
	return &AuthService{codec: codec}
}

// Login checks the credentials and issues a token. Unknown emails and wrong
// passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, users repositories.UserRepository, in LoginInput) (string, *utils.AuthClaims, error) {
	user, err := users.FindByEmail(ctx, in.Email)
	if err != nil {
		if isNotFound(err) {
			return "", nil, fmt.Errorf("login %s: %w", in.Email, utils.ErrInvalidCredentials)
		}
		return "", nil, err
	}
	if !utils.CheckPasswordHash(in.Password, user.Password) {
		return "", nil, fmt.Errorf("login %s: %w", in.Email, utils.ErrInvalidCredentials)
	}
	return s.codec.Issue(PublicUserOf(user))
}

// Register creates a user with a hashed password.
func (s *AuthService) Register(ctx context.Context, users repositories.UserRepository, in RegisterInput) (*models.User, error) {
	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{Email: in.Email, Name: in.Name, Password: hashed}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func PublicUserOf(u *models.User) utils.PublicUser {
	return utils.PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
