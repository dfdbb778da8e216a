// Package apidocs 在非生产环境提供接口文档页面和 OpenAPI JSON
package apidocs

import (
	"bytes"
	"fmt"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"html/template"
	"net/http"
	"path"
)

type Opts func(*config)

type config struct {
	SpecURL    string
	Authorizer func(*http.Request) bool // 返回 false 时响应 403
	ServerURL  string                   // 覆盖文档中的 servers
}

// WithAuthorizer 限制谁可以查看文档
func WithAuthorizer(f func(*http.Request) bool) Opts {
	return func(cfg *config) {
		cfg.Authorizer = f
	}
}

// WithServerURL 让文档页面的调试请求发往实际的监听地址
func WithServerURL(url string) Opts {
	return func(cfg *config) {
		cfg.ServerURL = url
	}
}

var pageTmpl = template.Must(template.New("apidoc").Parse(pageTemplate))

// Doc 挂载三个路径：basePath 跳转到页面，basePath/apidocs 为页面，basePath/apispec.json 为文档
func Doc(basePath string, swagger *openapi3.T, opts ...Opts) (echo.MiddlewareFunc, error) {
	cfg := &config{
		SpecURL: path.Join(basePath, "apispec.json"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// 不修改调用方的文档
	doc := *swagger
	if cfg.ServerURL != "" {
		doc.Servers = openapi3.Servers{{URL: cfg.ServerURL}}
	}
	specJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}

	var page bytes.Buffer
	if err = pageTmpl.Execute(&page, cfg); err != nil {
		return nil, fmt.Errorf("render docs page: %w", err)
	}
	pageHTML := page.String()
	docPath := path.Join(basePath, "apidocs")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqPath := c.Request().URL.Path
			switch reqPath {
			case basePath, docPath, cfg.SpecURL:
			default:
				return next(c)
			}

			if cfg.Authorizer != nil && !cfg.Authorizer(c.Request()) {
				return c.String(http.StatusForbidden, "Forbidden")
			}

			switch reqPath {
			case docPath:
				return c.HTML(http.StatusOK, pageHTML)
			case cfg.SpecURL:
				return c.JSONBlob(http.StatusOK, specJSON)
			default:
				return c.Redirect(http.StatusFound, docPath)
			}
		}
	}, nil
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <title>Recipe Rise API</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
