// Package api 定义 HTTP 接口的请求体和响应体
package api

import (
	"recipe-rise/app/server/models"
	"time"
)

type ErrorMessage struct {
	Message string `json:"message"`
}

type Message struct {
	Message string `json:"message"`
}

type Credentials struct {
	Username string `json:"username" form:"username" validate:"required,max=64"`
	Password string `json:"password" form:"password" validate:"required,max=256"`
}

type LoginResult struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type SessionInfo struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	ActualName     string    `json:"actualName,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Description    string    `json:"description,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserNameInput 未提供的字段保持不变
type UserNameInput struct {
	ActualName *string `json:"actualName" form:"actualName" validate:"omitnil,max=128"`
}

type ProfileInfoInput struct {
	Description *string `form:"description" validate:"omitnil,max=2000"`
}

// Post 作者只给出 id
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Cover     string    `json:"cover,omitempty"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// PostWithAuthor 作者展开为用户名
type PostWithAuthor struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Cover     string    `json:"cover,omitempty"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PostTimes struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserProfile struct {
	User      User   `json:"user"`
	UserPosts []Post `json:"userPosts"`
}

type PostCreateInput struct {
	Title   string `form:"title" validate:"max=200"`
	Summary string `form:"summary" validate:"max=1000"`
	Content string `form:"content"`
}

type PostUpdateInput struct {
	ID      string `form:"id" validate:"required"`
	Title   string `form:"title" validate:"max=200"`
	Summary string `form:"summary" validate:"max=1000"`
	Content string `form:"content"`
}

func UserFromModel(u *models.User) User {
	return User{
		ID:             u.ID.String(),
		Username:       u.Username,
		ActualName:     u.ActualName,
		ProfilePicture: u.ProfilePicture,
		Description:    u.Description,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func PostFromModel(p *models.Post) Post {
	return Post{
		ID:        p.ID.String(),
		Title:     p.Title,
		Summary:   p.Summary,
		Content:   p.Content,
		Cover:     p.Cover,
		Author:    p.AuthorID.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func PostWithAuthorFromModel(p *models.Post) PostWithAuthor {
	return PostWithAuthor{
		ID:      p.ID.String(),
		Title:   p.Title,
		Summary: p.Summary,
		Content: p.Content,
		Cover:   p.Cover,
		Author: Author{
			ID:       p.AuthorID.String(),
			Username: p.Author.Username,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
