// Package cache 基于 Redis ：文章列表缓存和会话黑名单
package cache

import (
	"context"
	"errors"
	"fmt"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"recipe-rise/app/server/api"
	"recipe-rise/app/server/constants"
	"strconv"
	"time"
)

var ErrMiss = errors.New("cache miss")

type Cache struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) PostList(ctx context.Context, page int) ([]api.PostWithAuthor, error) {
	data, err := c.rdb.HGet(ctx, constants.CacheKeyPostList, strconv.Itoa(page)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("get post list cache: %w", err)
	}

	var posts []api.PostWithAuthor
	if err = json.Unmarshal(data, &posts); err != nil {
		// 可能是无效的缓存，清理掉
		c.rdb.HDel(ctx, constants.CacheKeyPostList, strconv.Itoa(page))
		return nil, fmt.Errorf("unmarshal post list cache: %w", err)
	}

	return posts, nil
}

func (c *Cache) SetPostList(ctx context.Context, page int, posts []api.PostWithAuthor) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("marshal post list: %w", err)
	}

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, constants.CacheKeyPostList, strconv.Itoa(page), data)
	pipe.Expire(ctx, constants.CacheKeyPostList, constants.CacheExpirePostList)
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set post list cache: %w", err)
	}

	return nil
}

// PurgePostLists 文章有任何写入时清空全部分页
func (c *Cache) PurgePostLists(ctx context.Context) error {
	return c.rdb.Del(ctx, constants.CacheKeyPostList).Err()
}

// RevokeSession 黑名单只需要保留到 token 自然过期
func (c *Cache) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, fmt.Sprintf(constants.CacheKeySessionRevoked, tokenID), 1, ttl).Err()
}

func (c *Cache) IsSessionRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	n, err := c.rdb.Exists(ctx, fmt.Sprintf(constants.CacheKeySessionRevoked, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked session: %w", err)
	}
	return n > 0, nil
}
