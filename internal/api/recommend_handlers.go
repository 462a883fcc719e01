package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RecommendationRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// PostRecommendation runs the goal-recommendation pipeline. The canonical
// response shape is the full Goal record.
func PostRecommendation(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RecommendationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request: prompt required")
			return
		}
		goal, err := app.Engine().Recommend(c.Request.Context(), req.Prompt)
		if err != nil {
			status, msg := StatusFromErr(err)
			HandleError(c, app.Logger(), err, status, msg)
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusCreated, goal, nil)
	}
}

func GetGoals(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		goals, err := app.Goals().ListGoals(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch goals")
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, goals, nil)
	}
}
