package handlers

import (
	"context"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"time"
)

// HealthCheck 数据库不可用时返回 503 ，方便负载均衡摘除实例
func (a *App) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		a.l.Warn("health check failed", zap.Error(err))
		return a.er(c, http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}
