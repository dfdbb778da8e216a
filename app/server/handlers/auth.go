package handlers

import (
	"errors"
	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"recipe-rise/app/server/api"
	"recipe-rise/app/server/constants"
	"recipe-rise/app/server/jwt"
	"recipe-rise/app/server/middlewares"
	"recipe-rise/app/server/models"
	"recipe-rise/app/server/store"
	"time"
)

func (a *App) Register(c echo.Context) error {
	// 绑定请求体
	var req api.Credentials
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return a.erm(c, http.StatusBadRequest, err.Error())
	}

	// 计算密码哈希
	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	user := models.User{
		Username: req.Username,
		Password: passwordHash,
	}
	if err = a.db.CreateUser(c.Request().Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return a.erm(c, http.StatusBadRequest, msgUsernameTaken)
		}
		return a.storeEr(c, err, "failed to create user", zap.String("username", req.Username))
	}

	return c.JSON(http.StatusOK, api.UserFromModel(&user))
}

func (a *App) Login(c echo.Context) error {
	// 绑定请求体
	var req api.Credentials
	if err := c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err := c.Validate(&req); err != nil {
		return a.erm(c, http.StatusBadRequest, msgWrongCredentials)
	}

	// 查找用户
	user, err := a.db.GetUserByUsername(c.Request().Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.erm(c, http.StatusBadRequest, msgWrongCredentials)
		}
		return a.storeEr(c, err, "failed to get user", zap.String("username", req.Username))
	}

	// 验证密码
	match, _, err := argon2id.CheckHash(req.Password, user.Password)
	if err != nil {
		a.l.Error("failed to compare password", zap.String("username", req.Username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	if !match {
		return a.erm(c, http.StatusBadRequest, msgWrongCredentials)
	}

	// 签发 token
	session := &jwt.User{
		ID:       user.ID.String(),
		Username: user.Username,
	}
	token, err := a.jwt.SignToken(session)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	c.SetCookie(a.sessionCookie(token, time.Unix(session.Expires, 0)))

	return c.JSON(http.StatusOK, &api.LoginResult{
		ID:       session.ID,
		Username: session.Username,
	})
}

func (a *App) Logout(c echo.Context) error {
	if a.revokeOnLogout {
		if cookie, err := c.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
			// 无效的 token 不需要拉黑
			if user, err := a.jwt.ParseUser(cookie.Value); err == nil {
				ttl := time.Until(time.Unix(user.Expires, 0))
				if err = a.cache.RevokeSession(c.Request().Context(), user.TokenID, ttl); err != nil {
					a.l.Error("failed to revoke session", zap.String("jti", user.TokenID), zap.Error(err))
					return a.er(c, http.StatusInternalServerError)
				}
			}
		}
	}

	c.SetCookie(a.sessionCookie("", time.Unix(0, 0)))

	return c.JSON(http.StatusOK, "ok")
}

func (a *App) Profile(c echo.Context) error {
	user, ok := middlewares.SessionUser(c)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	return c.JSON(http.StatusOK, &api.SessionInfo{
		ID:        user.ID,
		Username:  user.Username,
		IssuedAt:  user.IssuedAt,
		ExpiresAt: user.Expires,
	})
}

// sessionCookie 值为空时生成用于清除的 cookie
func (a *App) sessionCookie(value string, expires time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if a.secureCookie {
		cookie.SameSite = http.SameSiteNoneMode
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	return cookie
}
