package handlers

import (
	"bytes"
	"context"
	"fmt"
	"github.com/google/uuid"
	"io"
	"recipe-rise/app/server/api"
	"recipe-rise/app/server/cache"
	"recipe-rise/app/server/media"
	"recipe-rise/app/server/models"
	"recipe-rise/app/server/store"
	"sort"
	"sync"
	"time"
)

// fakeStore 内存实现，语义与 store.Store 保持一致
type fakeStore struct {
	mu      sync.Mutex
	pingErr error
	now     time.Time
	users   map[uuid.UUID]models.User
	posts   map[uuid.UUID]models.Post
	assets  map[string]models.AssetState
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		now:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:  map[uuid.UUID]models.User{},
		posts:  map[uuid.UUID]models.Post{},
		assets: map[string]models.AssetState{},
	}
}

// tick 每次写入时间严格递增
func (s *fakeStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *fakeStore) setAsset(publicID string, state models.AssetState) {
	if publicID != "" {
		s.assets[publicID] = state
	}
}

func (s *fakeStore) assetState(publicID string) (models.AssetState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.assets[publicID]
	return state, ok
}

func (s *fakeStore) Ping(_ context.Context) error {
	return s.pingErr
}

func (s *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return fmt.Errorf("%w: username", store.ErrDuplicate)
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = s.tick()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (s *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *fakeStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *fakeStore) UpdateUserName(_ context.Context, id uuid.UUID, actualName *string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if actualName != nil {
		u.ActualName = *actualName
	}
	u.UpdatedAt = s.tick()
	s.users[id] = u
	return &u, nil
}

func (s *fakeStore) UpdateUserProfileInfo(_ context.Context, id uuid.UUID, description *string, pictureURL, pictureID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if u.ProfilePictureID != pictureID {
		s.setAsset(u.ProfilePictureID, models.AssetReleased)
	}
	s.setAsset(pictureID, models.AssetAttached)
	if description != nil {
		u.Description = *description
	}
	u.ProfilePicture = pictureURL
	u.ProfilePictureID = pictureID
	u.UpdatedAt = s.tick()
	s.users[id] = u
	return &u, nil
}

func (s *fakeStore) withAuthor(p models.Post) models.Post {
	author := s.users[p.AuthorID]
	p.Author = models.User{ID: author.ID, Username: author.Username}
	return p
}

func (s *fakeStore) CreatePost(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[post.AuthorID]; !ok {
		return fmt.Errorf("%w: author", store.ErrNotFound)
	}
	post.ID = uuid.New()
	post.CreatedAt = s.tick()
	post.UpdatedAt = post.CreatedAt
	s.posts[post.ID] = *post
	s.setAsset(post.CoverID, models.AssetAttached)
	return nil
}

func (s *fakeStore) GetPost(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p = s.withAuthor(p)
	return &p, nil
}

func (s *fakeStore) sortedPosts(keep func(models.Post) bool) []models.Post {
	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if keep(p) {
			posts = append(posts, s.withAuthor(p))
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

func (s *fakeStore) ListPosts(_ context.Context, offset, limit int) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	posts := s.sortedPosts(func(models.Post) bool { return true })
	if offset >= len(posts) {
		return []models.Post{}, nil
	}
	posts = posts[offset:]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *fakeStore) ListPostsByAuthor(_ context.Context, authorID uuid.UUID) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedPosts(func(p models.Post) bool { return p.AuthorID == authorID }), nil
}

func (s *fakeStore) UpdatePost(_ context.Context, post *models.Post, previousCoverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[post.ID]
	if !ok {
		return store.ErrNotFound
	}
	p.Title = post.Title
	p.Summary = post.Summary
	p.Content = post.Content
	p.Cover = post.Cover
	p.CoverID = post.CoverID
	p.UpdatedAt = s.tick()
	s.posts[post.ID] = p
	post.UpdatedAt = p.UpdatedAt
	if previousCoverID != post.CoverID {
		s.setAsset(post.CoverID, models.AssetAttached)
		s.setAsset(previousCoverID, models.AssetReleased)
	}
	return nil
}

func (s *fakeStore) DeletePost(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.posts, id)
	s.setAsset(p.CoverID, models.AssetReleased)
	return &p, nil
}

func (s *fakeStore) StageAsset(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAsset(publicID, models.AssetStaged)
	return nil
}

func (s *fakeStore) ReleaseAsset(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAsset(publicID, models.AssetReleased)
	return nil
}

func (s *fakeStore) ForgetAsset(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assets, publicID)
	return nil
}

// fakeMedia 记录上传和删除，bytes 不为 0 时覆盖上传后的体积
type fakeMedia struct {
	mu       sync.Mutex
	seq      int
	bytes    int64
	maxBytes int64
	uploaded map[string][]byte
	deleted  []string
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{
		maxBytes: 2621440,
		uploaded: map[string][]byte{},
	}
}

func (m *fakeMedia) NewPublicID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("recipe-rise/asset-%d", m.seq)
}

func (m *fakeMedia) Upload(_ context.Context, r io.Reader, publicID string, _ media.Transform) (*media.AssetRef, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploaded[publicID] = data

	ref := &media.AssetRef{
		PublicID: publicID,
		URL:      "https://media.example.com/" + publicID + ".jpg",
		Bytes:    int64(len(data)),
	}
	if m.bytes != 0 {
		ref.Bytes = m.bytes
	}
	if ref.Bytes > m.maxBytes {
		return ref, media.ErrAssetTooLarge
	}
	return ref, nil
}

func (m *fakeMedia) Delete(_ context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.uploaded, publicID)
	m.deleted = append(m.deleted, publicID)
	return nil
}

func (m *fakeMedia) isDeleted(publicID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.deleted {
		if id == publicID {
			return true
		}
	}
	return false
}

type fakeCache struct {
	mu      sync.Mutex
	lists   map[int][]byte
	revoked map[string]time.Duration
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		lists:   map[int][]byte{},
		revoked: map[string]time.Duration{},
	}
}

func (c *fakeCache) PostList(_ context.Context, page int) ([]api.PostWithAuthor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.lists[page]
	if !ok {
		return nil, cache.ErrMiss
	}
	c.hits++
	var posts []api.PostWithAuthor
	if err := decodeJSON(bytes.NewReader(data), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *fakeCache) SetPostList(_ context.Context, page int, posts []api.PostWithAuthor) error {
	data, err := encodeJSON(posts)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists[page] = data
	return nil
}

func (c *fakeCache) PurgePostLists(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists = map[int][]byte{}
	return nil
}

func (c *fakeCache) RevokeSession(_ context.Context, tokenID string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revoked[tokenID] = ttl
	return nil
}

func (c *fakeCache) IsSessionRevoked(_ context.Context, tokenID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.revoked[tokenID]
	return ok, nil
}

var _ Store = (*fakeStore)(nil)
var _ Media = (*fakeMedia)(nil)
var _ Cache = (*fakeCache)(nil)
