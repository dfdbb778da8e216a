package middlewares

import (
	"context"
	"errors"
	"fmt"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"recipe-rise/app/server/api"
	"recipe-rise/app/server/constants"
	"recipe-rise/app/server/jwt"
)

var (
	ErrSessionRevoked        = errors.New("session revoked")
	ErrRevocationUnavailable = errors.New("revocation list unavailable")
)

type RevocationChecker interface {
	IsSessionRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Session 从 cookie 中提取 token 并验证，成功后把 *jwt.User 放入 context 。
// revoked 为 nil 时不检查黑名单
func Session(j *jwt.JWT, revoked RevocationChecker, l *zap.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  constants.SessionContextKey,
		TokenLookup: "cookie:" + constants.SessionCookieName,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			// 验证 token
			user, err := j.ParseUser(auth)
			if err != nil {
				return nil, err
			}

			// 查询黑名单
			if revoked != nil {
				isRevoked, err := revoked.IsSessionRevoked(c.Request().Context(), user.TokenID)
				if err != nil {
					l.Error("failed to check session revocation", zap.String("jti", user.TokenID), zap.Error(err))
					return nil, fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
				}
				if isRevoked {
					return nil, ErrSessionRevoked
				}
			}

			return user, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			statusCode := http.StatusUnauthorized
			if errors.Is(err, ErrRevocationUnavailable) {
				statusCode = http.StatusInternalServerError
			}
			return c.JSON(statusCode, &api.ErrorMessage{
				Message: http.StatusText(statusCode),
			})
		},
	})
}

// SessionUser 只能在 Session 之后使用
func SessionUser(c echo.Context) (*jwt.User, bool) {
	user, ok := c.Get(constants.SessionContextKey).(*jwt.User)
	return user, ok && user != nil
}
