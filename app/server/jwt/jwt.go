package jwt

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"time"
)

type JWT struct {
	key []byte
	ttl time.Duration
}

// User 会话 token 中携带的身份信息
type User struct {
	ID       string
	Username string
	TokenID  string // jti ，用于登出黑名单
	IssuedAt int64  // Unix second
	Expires  int64  // Unix second
}

type claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func New(key string, ttl time.Duration) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}
	if ttl <= 0 {
		return nil, errors.New("ttl must be positive")
	}

	return &JWT{key: []byte(key), ttl: ttl}, nil
}

func (j *JWT) TTL() time.Duration {
	return j.ttl
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	// 匹配内容
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid || c.ID == "" {
		return nil, fmt.Errorf("invalid token")
	}

	user := &User{
		ID:       c.ID,
		Username: c.Username,
		TokenID:  c.RegisteredClaims.ID,
		Expires:  c.ExpiresAt.Unix(),
	}
	if c.IssuedAt != nil {
		user.IssuedAt = c.IssuedAt.Unix()
	}

	return user, nil
}

// SignToken 签出 token ，会回填 TokenID 、IssuedAt 和 Expires
func (j *JWT) SignToken(user *User) (string, error) {
	now := time.Now()
	user.TokenID = uuid.NewString()
	user.IssuedAt = now.Unix()
	user.Expires = now.Add(j.ttl).Unix()

	// 创建声明
	c := &claims{
		ID:       user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        user.TokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	// 签名并返回
	return token.SignedString(j.key)
}
