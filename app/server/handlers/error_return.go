package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"recipe-rise/app/server/api"
	"recipe-rise/app/server/store"
)

const (
	msgUsernameTaken    = "username already taken"
	msgWrongCredentials = "wrong credentials"
	msgNotAuthor        = "You are not the author."
	msgPostNotFound     = "Post not found"
	msgPostDeleted      = "Post deleted successfully"
	msgImageRequired    = "An image file is required."
	msgImageTooLarge    = "Image size is too large."
	msgImageType        = "Only jpg, png and gif images are accepted."
)

func (a *App) er(c echo.Context, statusCode int) error {
	return a.erm(c, statusCode, http.StatusText(statusCode))
}

func (a *App) erm(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, &api.ErrorMessage{
		Message: message,
	})
}

// storeEr 把存储层的错误映射为状态码，只有无法预期的错误才记录日志
func (a *App) storeEr(c echo.Context, err error, logMessage string, fields ...zap.Field) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return a.er(c, http.StatusNotFound)
	case errors.Is(err, store.ErrDuplicate):
		return a.er(c, http.StatusBadRequest)
	default:
		a.l.Error(logMessage, append(fields, zap.Error(err))...)
		return a.er(c, http.StatusInternalServerError)
	}
}
