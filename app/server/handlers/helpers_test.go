package handlers

import (
	"bytes"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"recipe-rise/app/server/constants"
	"recipe-rise/app/server/jwt"
	"recipe-rise/app/server/utils"
	"strings"
	"testing"
	"time"
)

type testEnv struct {
	e     *echo.Echo
	app   *App
	store *fakeStore
	media *fakeMedia
	cache *fakeCache
}

func newTestEnv(t *testing.T, revokeOnLogout bool) *testEnv {
	t.Helper()

	j, err := jwt.New("test-signature-secret", time.Hour)
	require.NoError(t, err)

	env := &testEnv{
		e:     echo.New(),
		store: newFakeStore(),
		media: newFakeMedia(),
		cache: newFakeCache(),
	}
	env.app = NewApp(zaptest.NewLogger(t), env.store, env.media, env.cache, j, false, revokeOnLogout)
	env.e.JSONSerializer = utils.JSONSerializer{}
	RegisterHandlers(env.e, env.app)

	return env
}

func encodeJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func decodeJSON(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}

func (env *testEnv) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doJSON(t *testing.T, method, target string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		data, err := encodeJSON(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return env.do(req, cookie)
}

// doMultipart file 为 nil 时不附带文件
func (env *testEnv) doMultipart(t *testing.T, method, target string, fields map[string]string, fileField string, file []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		fw, err := w.CreateFormFile(fileField, "upload.png")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return env.do(req, cookie)
}

func sessionCookieFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	return nil
}

// signUp 注册并登录，返回用户 id 和会话 cookie
func (env *testEnv) signUp(t *testing.T, username, password string) (string, *http.Cookie) {
	t.Helper()

	creds := map[string]string{"username": username, "password": password}

	rec := env.doJSON(t, http.MethodPost, "/register", creds, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.doJSON(t, http.MethodPost, "/login", creds, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		ID string `json:"id"`
	}
	require.NoError(t, decodeJSON(rec.Body, &res))

	cookie := sessionCookieFrom(rec)
	require.NotNil(t, cookie)

	return res.ID, &http.Cookie{Name: cookie.Name, Value: cookie.Value}
}

// testImage 生成一张约 10KB 的噪点 PNG
func testImage(t *testing.T, seed int64) []byte {
	t.Helper()

	rnd := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			img.Set(x, y, color.RGBA{R: uint8(rnd.Intn(256)), G: uint8(rnd.Intn(256)), B: uint8(rnd.Intn(256)), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var res struct {
		Message string `json:"message"`
	}
	require.NoError(t, decodeJSON(strings.NewReader(rec.Body.String()), &res))
	return res.Message
}
