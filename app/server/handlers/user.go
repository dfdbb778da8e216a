package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"recipe-rise/app/server/api"
)

func (a *App) UserProfileGet(c echo.Context) error {
	session, err, statusCode := a.authUser(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	user, err := a.db.GetUser(rctx, session.UID)
	if err != nil {
		return a.storeEr(c, err, "failed to get user", zap.String("id", session.ID))
	}

	posts, err := a.db.ListPostsByAuthor(rctx, session.UID)
	if err != nil {
		return a.storeEr(c, err, "failed to list user posts", zap.String("id", session.ID))
	}

	res := api.UserProfile{
		User:      api.UserFromModel(user),
		UserPosts: make([]api.Post, 0, len(posts)),
	}
	for i := range posts {
		res.UserPosts = append(res.UserPosts, api.PostFromModel(&posts[i]))
	}

	return c.JSON(http.StatusOK, &res)
}

func (a *App) UserProfileUpdate(c echo.Context) error {
	session, err, statusCode := a.authUser(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	// 绑定请求体
	var req api.UserNameInput
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err = c.Validate(&req); err != nil {
		return a.erm(c, http.StatusBadRequest, err.Error())
	}

	user, err := a.db.UpdateUserName(c.Request().Context(), session.UID, req.ActualName)
	if err != nil {
		return a.storeEr(c, err, "failed to update user name", zap.String("id", session.ID))
	}

	return c.JSON(http.StatusOK, api.UserFromModel(user))
}

// UserProfileInfoUpdate 没有上传头像时清除原有头像
func (a *App) UserProfileInfoUpdate(c echo.Context) error {
	session, err, statusCode := a.authUser(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	// 绑定请求体
	var req api.ProfileInfoInput
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err = c.Validate(&req); err != nil {
		return a.erm(c, http.StatusBadRequest, err.Error())
	}

	rctx := c.Request().Context()

	previous, err := a.db.GetUser(rctx, session.UID)
	if err != nil {
		return a.storeEr(c, err, "failed to get user", zap.String("id", session.ID))
	}

	ref, err, statusCode := a.uploadFormImage(c, "profilePicture", avatarTransform)
	if err != nil {
		return a.uploadEr(c, err, statusCode)
	}

	var pictureURL, pictureID string
	if ref != nil {
		pictureURL, pictureID = ref.URL, ref.PublicID
	}

	user, err := a.db.UpdateUserProfileInfo(rctx, session.UID, req.Description, pictureURL, pictureID)
	if err != nil {
		a.dropAsset(rctx, pictureID)
		return a.storeEr(c, err, "failed to update user profile info", zap.String("id", session.ID))
	}

	// 旧头像已经不再被引用
	if previous.ProfilePictureID != pictureID {
		a.dropAsset(rctx, previous.ProfilePictureID)
	}

	return c.JSON(http.StatusOK, api.UserFromModel(user))
}
