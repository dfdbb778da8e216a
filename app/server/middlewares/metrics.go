package middlewares

import (
	"github.com/labstack/echo/v4"
	"recipe-rise/app/server/metrics"
	"strconv"
	"time"
)

// Metrics 按路由模板（而不是实际路径）记录请求数和耗时，避免 id 撑爆标签
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// 提前交给错误处理，才能拿到最终状态码
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordRequest(
				c.Request().Method,
				route,
				strconv.Itoa(c.Response().Status),
				time.Since(start),
			)

			return err
		}
	}
}
