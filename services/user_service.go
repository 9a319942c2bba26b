package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/utils"
)

type ProfileInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

type PasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,nefield=CurrentPassword"`
}

type AvatarInput struct {
	Image string `json:"image" validate:"required,datauri"`
}

type UserService struct {
	avatars utils.AvatarStore
}

// NewUserService builds the profile service. avatars may be nil when no
// bucket is configured; avatar uploads then fail.
func NewUserService(avatars utils.AvatarStore) *UserService {
	return &UserService{avatars: avatars}
}

func (s *UserService) Profile(ctx context.Context, users repositories.UserRepository, userID string) (*models.User, error) {
	return users.Get(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, users repositories.UserRepository, userID string, in ProfileInput) (*models.User, error) {
	user, err := users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = in.Name
	if err := users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, users repositories.UserRepository, userID string, in PasswordInput) error {
	user, err := users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(in.CurrentPassword, user.Password) {
		return fmt.Errorf("change password: %w", utils.ErrInvalidCredentials)
	}
	hashed, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hashed
	return users.Update(ctx, user)
}

func (s *UserService) UpdateAvatar(ctx context.Context, users repositories.UserRepository, userID string, in AvatarInput) (*models.User, error) {
	if s.avatars == nil {
		return nil, errors.New("avatar storage is not configured")
	}
	user, err := users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.avatars.PutAvatar(ctx, user.ID, in.Image)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = url
	if err := users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
