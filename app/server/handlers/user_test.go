package handlers

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"recipe-rise/app/server/models"
	"testing"
)

type userProfileResponse struct {
	User struct {
		ID             string `json:"id"`
		Username       string `json:"username"`
		ActualName     string `json:"actualName"`
		ProfilePicture string `json:"profilePicture"`
		Description    string `json:"description"`
	} `json:"user"`
	UserPosts []struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Author string `json:"author"`
	} `json:"userPosts"`
}

func TestUserProfileGet(t *testing.T) {
	env := newTestEnv(t, false)
	aliceID, alice := env.signUp(t, "alice", "pw1")
	_, bob := env.signUp(t, "bob", "pw2")

	for i, cookie := range []*http.Cookie{alice, alice, bob} {
		rec := env.doMultipart(t, http.MethodPost, "/post", map[string]string{"title": "post"}, "file", testImage(t, int64(i)), cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := env.doJSON(t, http.MethodGet, "/user/profile", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)

	var res userProfileResponse
	require.NoError(t, decodeJSON(rec.Body, &res))
	assert.Equal(t, aliceID, res.User.ID)
	assert.Equal(t, "alice", res.User.Username)
	require.Len(t, res.UserPosts, 2)
	for _, p := range res.UserPosts {
		assert.Equal(t, aliceID, p.Author)
	}

	t.Run("no session", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet, "/user/profile", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("empty post list is an array", func(t *testing.T) {
		_, carol := env.signUp(t, "carol", "pw3")
		rec := env.doJSON(t, http.MethodGet, "/user/profile", nil, carol)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"userPosts":[]`)
	})
}

func TestUserProfileUpdate(t *testing.T) {
	env := newTestEnv(t, false)
	_, alice := env.signUp(t, "alice", "pw1")

	rec := env.doJSON(t, http.MethodPut, "/user/profile", map[string]string{"actualName": "Alice Liddell"}, alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		ActualName string `json:"actualName"`
	}
	require.NoError(t, decodeJSON(rec.Body, &res))
	assert.Equal(t, "Alice Liddell", res.ActualName)

	rec = env.doJSON(t, http.MethodGet, "/user/profile", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile userProfileResponse
	require.NoError(t, decodeJSON(rec.Body, &profile))
	assert.Equal(t, "Alice Liddell", profile.User.ActualName)

	t.Run("omitted name is kept", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPut, "/user/profile", map[string]string{}, alice)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		res.ActualName = ""
		require.NoError(t, decodeJSON(rec.Body, &res))
		assert.Equal(t, "Alice Liddell", res.ActualName)
	})

	t.Run("empty name clears it", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodPut, "/user/profile", map[string]string{"actualName": ""}, alice)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = env.doJSON(t, http.MethodGet, "/user/profile", nil, alice)
		var profile userProfileResponse
		require.NoError(t, decodeJSON(rec.Body, &profile))
		assert.Empty(t, profile.User.ActualName)
	})
}

func TestUserProfileInfoUpdate(t *testing.T) {
	env := newTestEnv(t, false)
	_, alice := env.signUp(t, "alice", "pw1")

	// 带头像
	rec := env.doMultipart(t, http.MethodPut, "/user/profile-info", map[string]string{"description": "I cook."}, "profilePicture", testImage(t, 1), alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		ProfilePicture string `json:"profilePicture"`
		Description    string `json:"description"`
	}
	require.NoError(t, decodeJSON(rec.Body, &res))
	assert.Equal(t, "I cook.", res.Description)
	assert.Equal(t, "https://media.example.com/recipe-rise/asset-1.jpg", res.ProfilePicture)

	state, ok := env.store.assetState("recipe-rise/asset-1")
	require.True(t, ok)
	assert.Equal(t, models.AssetAttached, state)

	// 不带头像时清除原有头像，旧资源被删除
	rec = env.doMultipart(t, http.MethodPut, "/user/profile-info", map[string]string{"description": "I bake."}, "", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res.ProfilePicture, res.Description = "", ""
	require.NoError(t, decodeJSON(rec.Body, &res))
	assert.Equal(t, "I bake.", res.Description)
	assert.Empty(t, res.ProfilePicture)
	assert.True(t, env.media.isDeleted("recipe-rise/asset-1"))
	_, ok = env.store.assetState("recipe-rise/asset-1")
	assert.False(t, ok)

	t.Run("too large picture leaves profile unchanged", func(t *testing.T) {
		env.media.bytes = 3 * 1024 * 1024
		defer func() { env.media.bytes = 0 }()

		rec := env.doMultipart(t, http.MethodPut, "/user/profile-info", map[string]string{"description": "changed"}, "profilePicture", testImage(t, 2), alice)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgImageTooLarge, messageOf(t, rec))

		rec = env.doJSON(t, http.MethodGet, "/user/profile", nil, alice)
		var profile userProfileResponse
		require.NoError(t, decodeJSON(rec.Body, &profile))
		assert.Equal(t, "I bake.", profile.User.Description)
	})

	t.Run("omitted description is kept", func(t *testing.T) {
		rec := env.doMultipart(t, http.MethodPut, "/user/profile-info", map[string]string{}, "profilePicture", testImage(t, 3), alice)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		res.ProfilePicture, res.Description = "", ""
		require.NoError(t, decodeJSON(rec.Body, &res))
		assert.Equal(t, "I bake.", res.Description)
		assert.NotEmpty(t, res.ProfilePicture)
	})
}
