package handlers

import (
	"errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"recipe-rise/app/server/api"
	"recipe-rise/app/server/cache"
	"recipe-rise/app/server/constants"
	"recipe-rise/app/server/models"
	"recipe-rise/app/server/store"
	"recipe-rise/app/server/utils"
)

func (a *App) PostCreate(c echo.Context) error {
	session, err, statusCode := a.authUser(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	// 绑定请求体
	var req api.PostCreateInput
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err = c.Validate(&req); err != nil {
		return a.erm(c, http.StatusBadRequest, err.Error())
	}

	// 上传封面
	ref, err, statusCode := a.uploadFormImage(c, "file", coverTransform)
	if err != nil {
		return a.uploadEr(c, err, statusCode)
	}
	if ref == nil {
		return a.erm(c, http.StatusBadRequest, msgImageRequired)
	}

	rctx := c.Request().Context()

	post := models.Post{
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		Cover:    ref.URL,
		CoverID:  ref.PublicID,
		AuthorID: session.UID,
	}
	if err = a.db.CreatePost(rctx, &post); err != nil {
		a.dropAsset(rctx, ref.PublicID)
		return a.storeEr(c, err, "failed to create post", zap.String("author", session.ID))
	}

	a.purgePostLists(c)

	return c.JSON(http.StatusOK, api.PostFromModel(&post))
}

func (a *App) PostUpdate(c echo.Context) error {
	session, err, statusCode := a.authUser(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	// 绑定请求体
	var req api.PostUpdateInput
	if err = c.Bind(&req); err != nil {
		a.l.Debug("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err = c.Validate(&req); err != nil {
		return a.erm(c, http.StatusBadRequest, err.Error())
	}

	post, err, statusCode := a.getPost(c, req.ID)
	if err != nil {
		return a.postEr(c, err, statusCode)
	}

	// 只有作者可以修改
	if post.AuthorID != session.UID {
		return a.erm(c, http.StatusBadRequest, msgNotAuthor)
	}

	// 上传新封面，失败时不修改文章
	ref, err, statusCode := a.uploadFormImage(c, "file", coverTransform)
	if err != nil {
		return a.uploadEr(c, err, statusCode)
	}

	rctx := c.Request().Context()

	previousCoverID := post.CoverID
	if ref != nil {
		post.Cover, post.CoverID = ref.URL, ref.PublicID
	}
	post.Title = req.Title
	post.Summary = req.Summary
	post.Content = req.Content

	if err = a.db.UpdatePost(rctx, post, previousCoverID); err != nil {
		if ref != nil {
			a.dropAsset(rctx, ref.PublicID)
		}
		if errors.Is(err, store.ErrNotFound) {
			return a.erm(c, http.StatusNotFound, msgPostNotFound)
		}
		return a.storeEr(c, err, "failed to update post", zap.String("id", req.ID))
	}

	// 新记录落库后再删除旧封面
	if ref != nil {
		a.dropAsset(rctx, previousCoverID)
	}

	a.purgePostLists(c)

	return c.JSON(http.StatusOK, api.PostFromModel(post))
}

func (a *App) PostDelete(c echo.Context) error {
	session, err, statusCode := a.authUser(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	post, err, statusCode := a.getPost(c, c.Param("id"))
	if err != nil {
		return a.postEr(c, err, statusCode)
	}

	// 只有作者可以删除
	if post.AuthorID != session.UID {
		return a.erm(c, http.StatusBadRequest, msgNotAuthor)
	}

	rctx := c.Request().Context()

	deleted, err := a.db.DeletePost(rctx, post.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.erm(c, http.StatusNotFound, msgPostNotFound)
		}
		return a.storeEr(c, err, "failed to delete post", zap.String("id", post.ID.String()))
	}

	a.dropAsset(rctx, deleted.CoverID)

	a.purgePostLists(c)

	return c.JSON(http.StatusOK, &api.Message{
		Message: msgPostDeleted,
	})
}

func (a *App) PostTimes(c echo.Context) error {
	post, err, statusCode := a.getPost(c, c.Param("id"))
	if err != nil {
		return a.postEr(c, err, statusCode)
	}

	return c.JSON(http.StatusOK, &api.PostTimes{
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	})
}

func (a *App) PostGet(c echo.Context) error {
	post, err, statusCode := a.getPost(c, c.Param("id"))
	if err != nil {
		return a.postEr(c, err, statusCode)
	}

	return c.JSON(http.StatusOK, api.PostWithAuthorFromModel(post))
}

// PostList 按创建时间倒序，每页 constants.PostPageSize 篇
func (a *App) PostList(c echo.Context) error {
	rctx := c.Request().Context()
	page := a.parsePage(c.QueryParam("page"))

	// 先查缓存
	if cached, err := a.cache.PostList(rctx, page); err == nil {
		return c.JSON(http.StatusOK, cached)
	} else if !errors.Is(err, cache.ErrMiss) {
		a.l.Warn("failed to read post list cache", zap.Int("page", page), zap.Error(err))
	}

	posts, err := a.db.ListPosts(rctx, page*constants.PostPageSize, constants.PostPageSize)
	if err != nil {
		return a.storeEr(c, err, "failed to list posts", zap.Int("page", page))
	}

	res := make([]api.PostWithAuthor, 0, len(posts))
	for i := range posts {
		res = append(res, api.PostWithAuthorFromModel(&posts[i]))
	}

	// 写入缓存
	if err = a.cache.SetPostList(rctx, page, res); err != nil {
		a.l.Warn("failed to write post list cache", zap.Int("page", page), zap.Error(err))
	}

	return c.JSON(http.StatusOK, res)
}

func (a *App) getPost(c echo.Context, idStr string) (*models.Post, error, int) {
	id, ok := utils.ParseID(idStr)
	if !ok {
		return nil, store.ErrNotFound, http.StatusNotFound
	}

	post, err := a.db.GetPost(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err, http.StatusNotFound
		}
		return nil, err, http.StatusInternalServerError
	}

	return post, nil, http.StatusOK
}

func (a *App) postEr(c echo.Context, err error, statusCode int) error {
	if statusCode == http.StatusNotFound {
		return a.erm(c, http.StatusNotFound, msgPostNotFound)
	}
	return a.storeEr(c, err, "failed to get post")
}

// purgePostLists 文章变化后清空列表缓存
func (a *App) purgePostLists(c echo.Context) {
	if err := a.cache.PurgePostLists(c.Request().Context()); err != nil {
		a.l.Error("failed to purge post list cache", zap.Error(err))
	}
}
