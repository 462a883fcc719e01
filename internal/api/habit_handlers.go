package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourname/habitquest/internal/service"
)

type StreakRequest struct {
	Completed bool `json:"completed"`
}

func GetHabits(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		habits, err := app.Habits().ListHabits(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch habits")
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, habits, nil)
	}
}

func PostHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.HabitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid habit payload")
			return
		}
		if err := service.ValidateHabitRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Habit validation failed")
			return
		}
		habit, err := service.CreateHabit(c.Request.Context(), app.Habits(), &req)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save habit")
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusCreated, habit, nil)
	}
}

func PutHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := habitID(c, app)
		if !ok {
			return
		}
		var req service.HabitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid habit payload")
			return
		}
		if err := service.ValidateHabitRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Habit validation failed")
			return
		}
		habit, err := service.ReplaceHabit(c.Request.Context(), app.Habits(), id, &req)
		if err != nil {
			status, msg := StatusFromErr(err)
			HandleError(c, app.Logger(), err, status, msg)
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, habit, nil)
	}
}

func PatchStreak(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := habitID(c, app)
		if !ok {
			return
		}
		var req StreakRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid streak payload")
			return
		}
		habit, err := service.UpdateStreak(c.Request.Context(), app.Habits(), id, req.Completed)
		if err != nil {
			status, msg := StatusFromErr(err)
			HandleError(c, app.Logger(), err, status, msg)
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, habit, nil)
	}
}

func DeleteHabit(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := habitID(c, app)
		if !ok {
			return
		}
		if err := service.DeleteHabit(c.Request.Context(), app.Habits(), id); err != nil {
			status, msg := StatusFromErr(err)
			HandleError(c, app.Logger(), err, status, msg)
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, gin.H{"deleted": id}, nil)
	}
}

func habitID(c *gin.Context, app App) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		HandleError(c, app.Logger(), err, 400, "Habit id must be an integer")
		return 0, false
	}
	return id, true
}
