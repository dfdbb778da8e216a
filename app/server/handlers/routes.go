package handlers

import (
	"github.com/labstack/echo/v4"
	"recipe-rise/app/server/middlewares"
)

func RegisterHandlers(e *echo.Echo, a *App) {
	if e.Validator == nil {
		e.Validator = NewValidator()
	}

	var revoked middlewares.RevocationChecker
	if a.revokeOnLogout {
		revoked = a.cache
	}
	auth := middlewares.Session(a.jwt, revoked, a.l)

	e.GET("/healthz", a.HealthCheck)

	// 账号
	e.POST("/register", a.Register)
	e.POST("/login", a.Login)
	e.POST("/logout", a.Logout)
	e.GET("/profile", a.Profile, auth)

	// 个人资料
	e.GET("/user/profile", a.UserProfileGet, auth)
	e.PUT("/user/profile", a.UserProfileUpdate, auth)
	e.PUT("/user/profile-info", a.UserProfileInfoUpdate, auth)

	// 文章
	e.GET("/post", a.PostList)
	e.POST("/post", a.PostCreate, auth)
	e.PUT("/post", a.PostUpdate, auth)
	e.GET("/post/times/:id", a.PostTimes)
	e.GET("/post/:id", a.PostGet)
	e.DELETE("/post/:id", a.PostDelete, auth)
}
