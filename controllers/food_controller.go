package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/services"
)

type foodListQuery struct {
	Q      string `form:"q" validate:"max=200"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" validate:"min=0"`
}

type FoodController struct {
	deps  Deps
	foods *services.FoodService
}

func NewFoodController(deps Deps, foods *services.FoodService) *FoodController {
	return &FoodController{deps: deps, foods: foods}
}

// GET /nutrition/food?q=apple&limit=20
func (fc *FoodController) List() gin.HandlerFunc {
	return Handle(fc.deps, Endpoint[foodListQuery, foodListResponse]{
		RequireAuth: true,
		Handle: func(call *Call[foodListQuery]) (*foodListResponse, error) {
			foods, err := fc.foods.List(call.Ctx, call.Repos.Foods, repositories.FoodFilter{
				Query:  call.Input.Q,
				Limit:  call.Input.Limit,
				Offset: call.Input.Offset,
			})
			if err != nil {
				return nil, err
			}
			out := &foodListResponse{Foods: make([]FoodResponse, 0, len(foods))}
			for i := range foods {
				out.Foods = append(out.Foods, newFoodResponse(&foods[i]))
			}
			return out, nil
		},
	})
}

// POST /nutrition/food
func (fc *FoodController) Create() gin.HandlerFunc {
	return Handle(fc.deps, Endpoint[services.FoodInput, idResponse]{
		RequireAuth: true,
		Status:      http.StatusCreated,
		Handle: func(call *Call[services.FoodInput]) (*idResponse, error) {
			food, err := fc.foods.Create(call.Ctx, call.Repos.Foods, call.Input)
			if err != nil {
				return nil, err
			}
			return &idResponse{ID: food.ID}, nil
		},
	})
}

// GET /nutrition/food/:id
func (fc *FoodController) Get() gin.HandlerFunc {
	return Handle(fc.deps, Endpoint[struct{}, FoodResponse]{
		Source:      SourceNone,
		RequireAuth: true,
		Handle: func(call *Call[struct{}]) (*FoodResponse, error) {
			food, err := fc.foods.Get(call.Ctx, call.Repos.Foods, call.Param("id"))
			if err != nil {
				return nil, err
			}
			out := newFoodResponse(food)
			return &out, nil
		},
	})
}

// PUT /nutrition/food/:id
func (fc *FoodController) Update() gin.HandlerFunc {
	return Handle(fc.deps, Endpoint[services.FoodPatch, FoodResponse]{
		RequireAuth: true,
		Handle: func(call *Call[services.FoodPatch]) (*FoodResponse, error) {
			food, err := fc.foods.Update(call.Ctx, call.Repos.Foods, call.Param("id"), call.Input)
			if err != nil {
				return nil, err
			}
			out := newFoodResponse(food)
			return &out, nil
		},
	})
}

// DELETE /nutrition/food/:id
func (fc *FoodController) Delete() gin.HandlerFunc {
	return Handle(fc.deps, Endpoint[struct{}, idResponse]{
		Source:      SourceNone,
		RequireAuth: true,
		Handle: func(call *Call[struct{}]) (*idResponse, error) {
			id := call.Param("id")
			if err := fc.foods.Delete(call.Ctx, call.Repos.Foods, id); err != nil {
				return nil, err
			}
			return &idResponse{ID: id}, nil
		},
	})
}
