package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/fitdiary/backend/services"
	"github.com/fitdiary/backend/session"
)

type UserController struct {
	deps         Deps
	users        *services.UserService
	verification *services.VerificationService
}

func NewUserController(deps Deps, users *services.UserService, verification *services.VerificationService) *UserController {
	return &UserController{deps: deps, users: users, verification: verification}
}

// GET /user/profile
func (uc *UserController) GetProfile() gin.HandlerFunc {
	return Handle(uc.deps, Endpoint[struct{}, ProfileResponse]{
		Source:      SourceNone,
		RequireAuth: true,
		Handle: func(call *Call[struct{}]) (*ProfileResponse, error) {
			user, err := uc.users.Profile(call.Ctx, call.Repos.Users, call.Claims.UserID)
			if err != nil {
				return nil, err
			}
			out := newProfileResponse(user)
			return &out, nil
		},
	})
}

// PUT /user/profile
func (uc *UserController) UpdateProfile() gin.HandlerFunc {
	return Handle(uc.deps, Endpoint[services.ProfileInput, ProfileResponse]{
		RequireAuth: true,
		Handle: func(call *Call[services.ProfileInput]) (*ProfileResponse, error) {
			user, err := uc.users.UpdateProfile(call.Ctx, call.Repos.Users, call.Claims.UserID, call.Input)
			if err != nil {
				return nil, err
			}
			out := newProfileResponse(user)
			return &out, nil
		},
	})
}

// PUT /user/password
func (uc *UserController) ChangePassword() gin.HandlerFunc {
	return Handle(uc.deps, Endpoint[services.PasswordInput, statusResponse]{
		RequireAuth: true,
		Handle: func(call *Call[services.PasswordInput]) (*statusResponse, error) {
			if err := uc.users.ChangePassword(call.Ctx, call.Repos.Users, call.Claims.UserID, call.Input); err != nil {
				return nil, err
			}
			return &statusResponse{Status: "password updated"}, nil
		},
	})
}

// PUT /user/avatar  { "image": "data:image/png;base64,..." }
func (uc *UserController) UpdateAvatar() gin.HandlerFunc {
	return Handle(uc.deps, Endpoint[services.AvatarInput, ProfileResponse]{
		RequireAuth: true,
		Handle: func(call *Call[services.AvatarInput]) (*ProfileResponse, error) {
			user, err := uc.users.UpdateAvatar(call.Ctx, call.Repos.Users, call.Claims.UserID, call.Input)
			if err != nil {
				return nil, err
			}
			out := newProfileResponse(user)
			return &out, nil
		},
	})
}

// POST /user/email/verify
func (uc *UserController) RequestEmailChange() gin.HandlerFunc {
	return Handle(uc.deps, Endpoint[services.EmailChangeInput, statusResponse]{
		RequireAuth: true,
		Handle: func(call *Call[services.EmailChangeInput]) (*statusResponse, error) {
			if err := uc.verification.RequestEmailChange(call.Ctx, call.Repos.Users, call.Claims.UserID, call.Input); err != nil {
				return nil, err
			}
			return &statusResponse{Status: "verification code sent"}, nil
		},
	})
}

// POST /user/email/confirm. The old token still names the old address, so
// a fresh one is issued.
func (uc *UserController) ConfirmEmailChange() gin.HandlerFunc {
	return Handle(uc.deps, Endpoint[services.EmailConfirmInput, emailConfirmedResponse]{
		RequireAuth: true,
		Handle: func(call *Call[services.EmailConfirmInput]) (*emailConfirmedResponse, error) {
			user, err := uc.verification.ConfirmEmailChange(call.Ctx, call.Repos.Users, call.Claims.UserID, call.Input)
			if err != nil {
				return nil, err
			}
			token, claims, err := uc.deps.Codec.Issue(services.PublicUserOf(user))
			if err != nil {
				return nil, err
			}
			call.SetCookie(session.NewAuth(token, claims).Cookie(uc.deps.SecureCookies))
			return &emailConfirmedResponse{User: newProfileResponse(user), Token: token}, nil
		},
	})
}
