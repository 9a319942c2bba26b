package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitdiary/backend/services"
	"github.com/fitdiary/backend/session"
	"github.com/fitdiary/backend/utils"
)

type sessionResponse struct {
	User *utils.PublicUser `json:"user" validate:"omitempty"`
	Date string            `json:"date" validate:"required"`
}

type dateInput struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type dateResponse struct {
	Date string `json:"date" validate:"required"`
}

// SessionController exposes the cookie-held session values.
type SessionController struct {
	deps Deps
	loc  *time.Location
}

func NewSessionController(deps Deps, loc *time.Location) *SessionController {
	if loc == nil {
		loc = time.Local
	}
	return &SessionController{deps: deps, loc: loc}
}

// GET /session
func (sc *SessionController) Get() gin.HandlerFunc {
	return Handle(sc.deps, Endpoint[struct{}, sessionResponse]{
		Source:    SourceNone,
		SkipStore: true,
		Handle: func(call *Call[struct{}]) (*sessionResponse, error) {
			auth := session.AuthFromRequest(call.Request, sc.deps.Codec)
			date := session.DateFromRequest(call.Request, sc.deps.now(), sc.loc)
			return &sessionResponse{User: auth.User, Date: date.String()}, nil
		},
	})
}

// PUT /session/date
func (sc *SessionController) SetDate() gin.HandlerFunc {
	return Handle(sc.deps, Endpoint[dateInput, dateResponse]{
		SkipStore: true,
		Handle: func(call *Call[dateInput]) (*dateResponse, error) {
			day, err := services.ParseDay(call.Input.Date, sc.loc)
			if err != nil {
				return nil, err
			}
			d := session.Date{Date: day}
			call.SetCookie(d.Cookie(sc.deps.now(), sc.deps.SecureCookies))
			return &dateResponse{Date: d.String()}, nil
		},
	})
}
