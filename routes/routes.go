package routes

import (
	"titanfit/controllers"
	"titanfit/middlewares"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Food    *controllers.FoodController
	Tracker *controllers.TrackerController
	Log     *controllers.LogController
	Chat    *controllers.ChatController
}

func SetupRouter(db *gorm.DB, h *Handlers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	// Protected API
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware(db))
	{
		api.GET("/dashboard", h.Tracker.Dashboard)
		api.GET("/stats/weekly", h.Tracker.WeeklyStats)

		api.POST("/food/classify-text", h.Food.ClassifyText)
		api.POST("/food/classify-image", h.Food.ClassifyImage)
		api.GET("/food/pending", h.Food.Pending)
		api.POST("/food/pending/confirm", h.Food.Confirm)
		api.POST("/food/pending/discard", h.Food.Discard)
		api.DELETE("/food/:id", h.Food.Delete)

		api.POST("/water", h.Log.AddWater)
		api.DELETE("/water", h.Log.RemoveWater)
		api.POST("/exercise", h.Log.AddExercise)
		api.DELETE("/exercise/:id", h.Log.DeleteExercise)

		api.POST("/chat", h.Chat.Send)

		api.GET("/profile", h.User.GetProfile)
		api.PUT("/profile", h.User.UpdateProfile)
		api.POST("/profile/body-analysis", h.User.AnalyzeBody)
		api.DELETE("/profile", h.User.DeleteAccount)
	}

	return r
}
