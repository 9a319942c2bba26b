package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fitdiary/backend/controllers"
	"github.com/fitdiary/backend/middlewares"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/services"
	"github.com/fitdiary/backend/utils"
)

// Dependencies wires the router. Redis, Avatars and Mailer are optional;
// the endpoints that need them fail with 500 when they are missing.
type Dependencies struct {
	Store  repositories.Store
	Codec  *utils.TokenCodec
	Logger logrus.FieldLogger

	Location   *time.Location
	CycleStart time.Time
	Clock      func() time.Time

	Redis           redis.Cmdable
	Avatars         utils.AvatarStore
	Mailer          utils.Mailer
	VerificationTTL time.Duration

	LoginRateLimit int
	Production     bool
	Metrics        *middlewares.Metrics
}

func SetupRouter(d Dependencies) (*gin.Engine, error) {
	if d.Metrics == nil {
		d.Metrics = middlewares.NewMetrics()
	}
	if d.LoginRateLimit <= 0 {
		d.LoginRateLimit = 10
	}

	deps := controllers.Deps{
		Store:         d.Store,
		Codec:         d.Codec,
		Validate:      utils.NewValidator(),
		Logger:        d.Logger,
		SecureCookies: d.Production,
		Clock:         d.Clock,
	}

	workouts, err := services.NewWorkoutService(nil, d.CycleStart, d.Location)
	if err != nil {
		return nil, err
	}
	authCtl := controllers.NewAuthController(deps, services.NewAuthService(d.Codec))
	nutritionCtl := controllers.NewNutritionController(deps, services.NewNutritionService(d.Location))
	analyticsCtl := controllers.NewAnalyticsController(deps, services.NewAnalyticsService(d.Location))
	foodCtl := controllers.NewFoodController(deps, services.NewFoodService())
	mealCtl := controllers.NewMealController(deps, services.NewMealService(d.Location))
	workoutCtl := controllers.NewWorkoutController(deps, workouts, d.Location)
	userCtl := controllers.NewUserController(deps,
		services.NewUserService(d.Avatars),
		services.NewVerificationService(d.Redis, d.Mailer, d.VerificationTTL),
	)
	sessionCtl := controllers.NewSessionController(deps, d.Location)

	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, rec any) {
			d.Logger.WithField("panic", rec).Error("panic outside handler")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		}),
		middlewares.WrapHTTP(middleware.RequestID),
		middlewares.WrapHTTP(middleware.RealIP),
		middlewares.RequestLogger(d.Logger),
		d.Metrics.Middleware(),
		middlewares.SecureHeaders(d.Production, d.Logger),
	)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", d.Metrics.Handler())

	api := r.Group("/api/v1")
	jsonBody := middlewares.LimitBody(middlewares.MaxJSONBody)
	// base64 inflates the image by 4/3; leave room for the JSON around it
	avatarBody := middlewares.LimitBody(utils.MaxAvatarBytes*4/3 + 4<<10)

	// Public auth routes
	auth := api.Group("/auth", jsonBody)
	{
		auth.POST("/login", middlewares.RateLimitByIP(d.LoginRateLimit, time.Minute), authCtl.Login())
		auth.POST("/logout", authCtl.Logout())
	}

	nutrition := api.Group("/nutrition", jsonBody)
	{
		nutrition.GET("", nutritionCtl.Overview())
		nutrition.GET("/summary", analyticsCtl.Summary())

		nutrition.GET("/food", foodCtl.List())
		nutrition.POST("/food", foodCtl.Create())
		nutrition.GET("/food/:id", foodCtl.Get())
		nutrition.PUT("/food/:id", foodCtl.Update())
		nutrition.DELETE("/food/:id", foodCtl.Delete())

		nutrition.GET("/meal", mealCtl.Get())
		nutrition.POST("/meal/item", mealCtl.AddItem())
		nutrition.DELETE("/meal/item/:id", mealCtl.RemoveItem())
	}

	api.GET("/workouts/schedule", workoutCtl.Schedule())

	user := api.Group("/user")
	{
		user.GET("/profile", userCtl.GetProfile())
		user.PUT("/profile", jsonBody, userCtl.UpdateProfile())
		user.PUT("/password", jsonBody, userCtl.ChangePassword())
		user.PUT("/avatar", avatarBody, userCtl.UpdateAvatar())
		user.POST("/email/verify", jsonBody, userCtl.RequestEmailChange())
		user.POST("/email/confirm", jsonBody, userCtl.ConfirmEmailChange())
	}

	sess := api.Group("/session", jsonBody)
	{
		sess.GET("", sessionCtl.Get())
		sess.PUT("/date", sessionCtl.SetDate())
	}

	return r, nil
}
