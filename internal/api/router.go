package api

import "github.com/gin-gonic/gin"

func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/habits", GetHabits(app))
	r.POST("/habits", PostHabit(app))
	r.PUT("/habits/:id", PutHabit(app))
	r.PATCH("/habits/:id/streak", PatchStreak(app))
	r.DELETE("/habits/:id", DeleteHabit(app))

	r.POST("/recommendations", PostRecommendation(app))
	r.GET("/goals", GetGoals(app))

	r.POST("/register", PostRegister(app))
	r.POST("/login", PostLogin(app))

	return r
}
