package handlers

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"net/http"
	"recipe-rise/app/server/jwt"
	"recipe-rise/app/server/middlewares"
)

type sessionUser struct {
	*jwt.User
	UID uuid.UUID
}

func (a *App) authUser(c echo.Context) (*sessionUser, error, int) {
	user, ok := middlewares.SessionUser(c)
	if !ok {
		return nil, fmt.Errorf("no session"), http.StatusUnauthorized
	}

	uid, err := uuid.Parse(user.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid session user id %q: %w", user.ID, err), http.StatusUnauthorized
	}

	return &sessionUser{
		User: user,
		UID:  uid,
	}, nil, http.StatusOK
}
