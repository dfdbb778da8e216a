package apidocs

import (
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetSwagger(t *testing.T) {
	swg, err := GetSwagger()
	require.NoError(t, err)

	for _, p := range []string{"/register", "/login", "/logout", "/profile", "/user/profile", "/user/profile-info", "/post", "/post/{id}", "/post/times/{id}", "/healthz"} {
		assert.NotNil(t, swg.Paths.Find(p), p)
	}
}

func TestDoc(t *testing.T) {
	swg, err := GetSwagger()
	require.NoError(t, err)

	mw, err := Doc("/docs", swg, WithServerURL("http://127.0.0.1:4000"))
	require.NoError(t, err)

	e := echo.New()
	e.Pre(mw)
	e.GET("/other", func(c echo.Context) error { return c.NoContent(http.StatusTeapot) })

	serve := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	rec := serve("/docs")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/docs/apidocs", rec.Header().Get(echo.HeaderLocation))

	rec = serve("/docs/apidocs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-url="/docs/apispec.json"`)

	rec = serve("/docs/apispec.json")
	require.Equal(t, http.StatusOK, rec.Code)
	var spec struct {
		OpenAPI string `json:"openapi"`
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "3.0.3", spec.OpenAPI)
	require.Len(t, spec.Servers, 1)
	assert.Equal(t, "http://127.0.0.1:4000", spec.Servers[0].URL)

	// 原文档不受影响
	assert.Equal(t, "http://localhost:4000", swg.Servers[0].URL)

	rec = serve("/other")
	assert.Equal(t, http.StatusTeapot, rec.Code)

	t.Run("authorizer", func(t *testing.T) {
		mw, err := Doc("/docs", swg, WithAuthorizer(func(*http.Request) bool { return false }))
		require.NoError(t, err)

		e := echo.New()
		e.Pre(mw)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/apispec.json", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
