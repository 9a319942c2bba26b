package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/fitdiary/backend/services"
	"github.com/fitdiary/backend/session"
)

type AuthController struct {
	deps Deps
	auth *services.AuthService
}

func NewAuthController(deps Deps, auth *services.AuthService) *AuthController {
	return &AuthController{deps: deps, auth: auth}
}

// Login handles POST /auth/login. The token is returned in the body and
// also set as a cookie that expires with it.
func (ac *AuthController) Login() gin.HandlerFunc {
	return Handle(ac.deps, Endpoint[services.LoginInput, tokenResponse]{
		Handle: func(call *Call[services.LoginInput]) (*tokenResponse, error) {
			token, claims, err := ac.auth.Login(call.Ctx, call.Repos.Users, call.Input)
			if err != nil {
				return nil, err
			}
			call.SetCookie(session.NewAuth(token, claims).Cookie(ac.deps.SecureCookies))
			call.Logger.WithField("user_id", claims.UserID).Info("user logged in")
			return &tokenResponse{Token: token}, nil
		},
	})
}

// Logout handles POST /auth/logout. Tokens are stateless, so this only
// clears the session cookies.
func (ac *AuthController) Logout() gin.HandlerFunc {
	return Handle(ac.deps, Endpoint[struct{}, statusResponse]{
		Source:    SourceNone,
		SkipStore: true,
		Handle: func(call *Call[struct{}]) (*statusResponse, error) {
			for _, c := range session.ClearCookies(ac.deps.SecureCookies) {
				call.SetCookie(c)
			}
			return &statusResponse{Status: "logged out"}, nil
		},
	})
}
