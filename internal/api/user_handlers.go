package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourname/habitquest/internal/service"
)

func PostRegister(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid registration payload")
			return
		}
		if err := service.ValidateRegisterRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Registration validation failed")
			return
		}
		profile, err := service.RegisterUser(c.Request.Context(), app.Users(), &req)
		if err != nil {
			status, msg := StatusFromErr(err)
			HandleError(c, app.Logger(), err, status, msg)
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusCreated, profile, nil)
	}
}

func PostLogin(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid login payload")
			return
		}
		if err := service.ValidateLoginRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Login validation failed")
			return
		}
		profile, err := service.LoginUser(c.Request.Context(), app.Users(), &req)
		if err != nil {
			status, msg := StatusFromErr(err)
			HandleError(c, app.Logger(), err, status, msg)
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, profile, nil)
	}
}
