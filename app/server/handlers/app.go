package handlers

import (
	"context"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"io"
	"recipe-rise/app/server/api"
	"recipe-rise/app/server/cache"
	"recipe-rise/app/server/jwt"
	"recipe-rise/app/server/media"
	"recipe-rise/app/server/models"
	"recipe-rise/app/server/store"
	"time"
)

type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserName(ctx context.Context, id uuid.UUID, actualName *string) (*models.User, error)
	UpdateUserProfileInfo(ctx context.Context, id uuid.UUID, description *string, pictureURL, pictureID string) (*models.User, error)

	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error)
	ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post, previousCoverID string) error
	DeletePost(ctx context.Context, id uuid.UUID) (*models.Post, error)

	StageAsset(ctx context.Context, publicID string) error
	ReleaseAsset(ctx context.Context, publicID string) error
	ForgetAsset(ctx context.Context, publicID string) error
}

type Media interface {
	NewPublicID() string
	Upload(ctx context.Context, r io.Reader, publicID string, t media.Transform) (*media.AssetRef, error)
	Delete(ctx context.Context, publicID string) error
}

type Cache interface {
	PostList(ctx context.Context, page int) ([]api.PostWithAuthor, error)
	SetPostList(ctx context.Context, page int, posts []api.PostWithAuthor) error
	PurgePostLists(ctx context.Context) error
	RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, tokenID string) (bool, error)
}

var _ Store = (*store.Store)(nil)
var _ Media = (*media.Adapter)(nil)
var _ Cache = (*cache.Cache)(nil)

type App struct {
	l     *zap.Logger // 日志
	db    Store       // 数据库
	media Media       // 媒体服务
	cache Cache       // Redis
	jwt   *jwt.JWT    // JWT ，用于无状态验证

	secureCookie   bool // 生产环境下前端跨域，cookie 需要 SameSite=None; Secure
	revokeOnLogout bool // 登出时把 token 加入黑名单
}

func NewApp(l *zap.Logger, db Store, m Media, c Cache, j *jwt.JWT, secureCookie bool, revokeOnLogout bool) *App {
	return &App{
		l:              l,
		db:             db,
		media:          m,
		cache:          c,
		jwt:            j,
		secureCookie:   secureCookie,
		revokeOnLogout: revokeOnLogout,
	}
}
