package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitdiary/backend/services"
)

type mealQuery struct {
	Date     string `form:"date" validate:"required,datetime=2006-01-02"`
	MealType string `form:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
}

type MealController struct {
	deps  Deps
	meals *services.MealService
}

func NewMealController(deps Deps, meals *services.MealService) *MealController {
	return &MealController{deps: deps, meals: meals}
}

// GET /nutrition/meal?date=2024-03-10&mealType=lunch
func (mc *MealController) Get() gin.HandlerFunc {
	return Handle(mc.deps, Endpoint[mealQuery, MealResponse]{
		RequireAuth: true,
		Handle: func(call *Call[mealQuery]) (*MealResponse, error) {
			day, err := services.ParseDay(call.Input.Date, mc.meals.Location())
			if err != nil {
				return nil, err
			}
			meal, err := mc.meals.Get(call.Ctx, call.Repos.Meals, call.Claims.UserID, day, call.Input.MealType)
			if err != nil {
				return nil, err
			}
			out := newMealResponse(meal, mc.meals.Location())
			return &out, nil
		},
	})
}

// POST /nutrition/meal/item
func (mc *MealController) AddItem() gin.HandlerFunc {
	return Handle(mc.deps, Endpoint[services.MealItemInput, mealItemCreatedResponse]{
		RequireAuth: true,
		Status:      http.StatusCreated,
		Handle: func(call *Call[services.MealItemInput]) (*mealItemCreatedResponse, error) {
			item, err := mc.meals.AddItem(call.Ctx, call.Repos, call.Claims.UserID, call.Input)
			if err != nil {
				return nil, err
			}
			return &mealItemCreatedResponse{ID: item.ID, MealID: item.MealID}, nil
		},
	})
}

// DELETE /nutrition/meal/item/:id
func (mc *MealController) RemoveItem() gin.HandlerFunc {
	return Handle(mc.deps, Endpoint[struct{}, idResponse]{
		Source:      SourceNone,
		RequireAuth: true,
		Handle: func(call *Call[struct{}]) (*idResponse, error) {
			id := call.Param("id")
			if err := mc.meals.RemoveItem(call.Ctx, call.Repos.Meals, call.Claims.UserID, id); err != nil {
				return nil, err
			}
			return &idResponse{ID: id}, nil
		},
	})
}
