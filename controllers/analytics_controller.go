package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitdiary/backend/services"
)

type summaryQuery struct {
	From           string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To             string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	IncludeMissing bool   `form:"includeMissingDays"`
}

type AnalyticsController struct {
	deps      Deps
	analytics *services.AnalyticsService
}

func NewAnalyticsController(deps Deps, analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{deps: deps, analytics: analytics}
}

// Summary handles GET /nutrition/summary?from=&to=&includeMissingDays=.
// The range defaults to the current month.
func (ac *AnalyticsController) Summary() gin.HandlerFunc {
	return Handle(ac.deps, Endpoint[summaryQuery, services.NutritionSummary]{
		RequireAuth: true,
		Handle: func(call *Call[summaryQuery]) (*services.NutritionSummary, error) {
			loc := ac.analytics.Location()
			now := ac.deps.now().In(loc)
			from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			to := from.AddDate(0, 1, -1)

			var err error
			if call.Input.From != "" {
				if from, err = services.ParseDay(call.Input.From, loc); err != nil {
					return nil, err
				}
			}
			if call.Input.To != "" {
				if to, err = services.ParseDay(call.Input.To, loc); err != nil {
					return nil, err
				}
			}
			return ac.analytics.Summary(call.Ctx, call.Repos.Meals, call.Claims.UserID, from, to, call.Input.IncludeMissing)
		},
	})
}
