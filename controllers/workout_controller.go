package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitdiary/backend/services"
	"github.com/fitdiary/backend/session"
)

type scheduleQuery struct {
	Date string `form:"date" validate:"omitempty,datetime=2006-01-02"`
}

type scheduleResponse struct {
	Date        string              `json:"date" validate:"required"`
	Program     string              `json:"program"`
	CycleDay    int                 `json:"cycleDay" validate:"min=1"`
	CycleLength int                 `json:"cycleLength" validate:"min=1,gtefield=CycleDay"`
	Progress    int                 `json:"progress" validate:"min=0,max=100"`
	Plan        string              `json:"plan" validate:"oneof=training rest"`
	Items       []services.Exercise `json:"items"`
}

type WorkoutController struct {
	deps     Deps
	workouts *services.WorkoutService
	loc      *time.Location
}

func NewWorkoutController(deps Deps, workouts *services.WorkoutService, loc *time.Location) *WorkoutController {
	if loc == nil {
		loc = time.Local
	}
	return &WorkoutController{deps: deps, workouts: workouts, loc: loc}
}

// Schedule handles GET /workouts/schedule. Without ?date it uses the date
// cookie, then today.
func (wc *WorkoutController) Schedule() gin.HandlerFunc {
	return Handle(wc.deps, Endpoint[scheduleQuery, scheduleResponse]{
		RequireAuth: true,
		SkipStore:   true,
		Handle: func(call *Call[scheduleQuery]) (*scheduleResponse, error) {
			day := session.DateFromRequest(call.Request, wc.deps.now(), wc.loc).Date
			if call.Input.Date != "" {
				d, err := services.ParseDay(call.Input.Date, wc.loc)
				if err != nil {
					return nil, err
				}
				day = d
			}
			s := wc.workouts.Schedule(day)
			return &scheduleResponse{
				Date:        s.Date.Format(services.DateLayout),
				Program:     s.Program,
				CycleDay:    s.CycleDay,
				CycleLength: s.CycleLength,
				Progress:    s.Progress,
				Plan:        s.Plan,
				Items:       s.Items,
			}, nil
		},
	})
}
