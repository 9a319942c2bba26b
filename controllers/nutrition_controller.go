package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/fitdiary/backend/services"
)

type nutritionQuery struct {
	Date string `form:"date" validate:"required,datetime=2006-01-02"`
}

type NutritionController struct {
	deps      Deps
	nutrition *services.NutritionService
}

func NewNutritionController(deps Deps, nutrition *services.NutritionService) *NutritionController {
	return &NutritionController{deps: deps, nutrition: nutrition}
}

// Overview handles GET /nutrition?date=YYYY-MM-DD.
func (nc *NutritionController) Overview() gin.HandlerFunc {
	return Handle(nc.deps, Endpoint[nutritionQuery, nutritionResponse]{
		RequireAuth: true,
		Handle: func(call *Call[nutritionQuery]) (*nutritionResponse, error) {
			day, err := services.ParseDay(call.Input.Date, nc.nutrition.Location())
			if err != nil {
				return nil, err
			}
			totals, err := nc.nutrition.Overview(call.Ctx, call.Repos.Meals, call.Claims.UserID, day)
			if err != nil {
				return nil, err
			}
			return &nutritionResponse{Nutrition: totals}, nil
		},
	})
}
