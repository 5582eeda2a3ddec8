package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minjipark/linkmemo-service/internal/domain"
	"github.com/minjipark/linkmemo-service/internal/model"
	"github.com/minjipark/linkmemo-service/internal/repository"
)

// fakePostStore is an in-memory PostRepository
type fakePostStore struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*domain.Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{nextID: 1, posts: make(map[int64]*domain.Post)}
}

func (f *fakePostStore) CreatePost(ctx context.Context, post *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = f.nextID
	f.nextID++
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	copied := *post
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePostStore) GetPostByID(ctx context.Context, postID int64) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok || !post.IsActive {
		return nil, repository.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostStore) GetPostByIDAndUserID(ctx context.Context, postID, userID int64) (*domain.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok || !post.IsActive || post.UserID == nil || *post.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostStore) GetActivePublishedPost(ctx context.Context, postID, userID int64) (*domain.Post, error) {
	post, err := f.GetPostByIDAndUserID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.Status != domain.PostStatusPublished {
		return nil, repository.ErrNotFound
	}
	return post, nil
}

func (f *fakePostStore) ListPostsByUserID(ctx context.Context, userID int64, filter domain.PostFilter) ([]domain.Post, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var owned []domain.Post
	for _, post := range f.posts {
		if post.IsActive && post.UserID != nil && *post.UserID == userID {
			owned = append(owned, *post)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID > owned[j].ID })

	total := len(owned)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return owned[start:end], total, nil
}

func (f *fakePostStore) UpdatePost(ctx context.Context, post *domain.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *post
	copied.UpdatedAt = time.Now()
	f.posts[post.ID] = &copied
	return nil
}

func (f *fakePostStore) UpdateMemo(ctx context.Context, postID int64, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	post.Memo = content
	post.MemoCreatedAt = &now
	return nil
}

func (f *fakePostStore) DeletePost(ctx context.Context, postID, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok || !post.IsActive || post.UserID == nil || *post.UserID != userID {
		return repository.ErrNotFound
	}
	post.IsActive = false
	return nil
}

// fakeTagStore is an in-memory TagRepository
type fakeTagStore struct {
	mu   sync.Mutex
	tags map[int64][]string
}

func newFakeTagStore() *fakeTagStore {
	return &fakeTagStore{tags: make(map[int64][]string)}
}

func (f *fakeTagStore) GetTagNamesByPostID(ctx context.Context, postID int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tags[postID]...), nil
}

func (f *fakeTagStore) GetTagNamesByPostIDs(ctx context.Context, postIDs []int64) (map[int64][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[int64][]string, len(postIDs))
	for _, id := range postIDs {
		if names, ok := f.tags[id]; ok {
			result[id] = append([]string(nil), names...)
		}
	}
	return result, nil
}

func (f *fakeTagStore) ReplacePostTags(ctx context.Context, postID int64, names []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tags[postID] = append([]string(nil), names...)
	return nil
}

// stubSummarizer returns a fixed title and summary
type stubSummarizer struct {
	err error
}

func (s *stubSummarizer) Summarize(ctx context.Context, url string) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "Page Title", "Page summary.", nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreatePost(t *testing.T) {
	t.Run("authenticated caller gets an owned temp post", func(t *testing.T) {
		posts := newFakePostStore()
		svc := NewPostService(posts, newFakeTagStore(), &stubSummarizer{})

		resp, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
			URL:    "https://example.com/article",
			UserID: int64Ptr(42),
		})
		require.NoError(t, err)
		require.NotZero(t, resp.PostID)

		stored, err := posts.GetPostByID(context.Background(), resp.PostID)
		require.NoError(t, err)
		assert.Equal(t, "Page Title", stored.Title)
		assert.Equal(t, "Page summary.", stored.Content)
		assert.Equal(t, domain.PostStatusTemp, stored.Status)
		require.NotNil(t, stored.UserID)
		assert.Equal(t, int64(42), *stored.UserID)
	})

	t.Run("anonymous caller gets an ownerless temp post", func(t *testing.T) {
		posts := newFakePostStore()
		svc := NewPostService(posts, newFakeTagStore(), &stubSummarizer{})

		resp, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
			URL: "https://example.com/article",
		})
		require.NoError(t, err)

		stored, err := posts.GetPostByID(context.Background(), resp.PostID)
		require.NoError(t, err)
		assert.Nil(t, stored.UserID)
	})

	t.Run("summarizer failure creates nothing", func(t *testing.T) {
		posts := newFakePostStore()
		svc := NewPostService(posts, newFakeTagStore(), &stubSummarizer{err: errors.New("model unavailable")})

		_, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
			URL: "https://example.com/article",
		})
		require.Error(t, err)
		assert.Empty(t, posts.posts)
	})
}

func TestListPosts(t *testing.T) {
	t.Run("lists only the caller's posts with tags, newest first", func(t *testing.T) {
		posts := newFakePostStore()
		tags := newFakeTagStore()
		svc := NewPostService(posts, tags, &stubSummarizer{})

		for i := 0; i < 3; i++ {
			_, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
				URL:    "https://example.com/article",
				UserID: int64Ptr(42),
			})
			require.NoError(t, err)
		}
		_, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
			URL:    "https://example.com/other",
			UserID: int64Ptr(7),
		})
		require.NoError(t, err)
		require.NoError(t, tags.ReplacePostTags(context.Background(), 3, []string{"go", "web"}))

		resp, err := svc.ListPosts(context.Background(), &model.ListPostsRequest{
			Page:   1,
			Limit:  10,
			UserID: int64Ptr(42),
		})
		require.NoError(t, err)

		require.Len(t, resp.Data, 3)
		assert.Equal(t, int64(3), resp.Data[0].ID, "newest first")
		assert.Equal(t, []string{"go", "web"}, resp.Data[0].TagList)
		assert.Equal(t, 3, resp.Pagination.TotalItems)
		assert.Equal(t, 1, resp.Pagination.TotalPages)
	})

	t.Run("anonymous caller cannot list", func(t *testing.T) {
		svc := NewPostService(newFakePostStore(), newFakeTagStore(), &stubSummarizer{})

		_, err := svc.ListPosts(context.Background(), &model.ListPostsRequest{Page: 1, Limit: 10})
		assert.Error(t, err)
	})
}

func TestUpdatePost(t *testing.T) {
	setup := func(t *testing.T) (PostService, *fakePostStore, *fakeTagStore, int64) {
		t.Helper()
		posts := newFakePostStore()
		tags := newFakeTagStore()
		svc := NewPostService(posts, tags, &stubSummarizer{})

		resp, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
			URL:    "https://example.com/article",
			UserID: int64Ptr(42),
		})
		require.NoError(t, err)
		return svc, posts, tags, resp.PostID
	}

	t.Run("publishing a temp post saves it with tags", func(t *testing.T) {
		svc, posts, tags, postID := setup(t)

		err := svc.UpdatePost(context.Background(), &model.UpdatePostRequest{
			Title:   "My Title",
			Publish: true,
			TagList: []string{"go"},
			PostID:  postID,
			UserID:  int64Ptr(42),
		})
		require.NoError(t, err)

		stored, err := posts.GetPostByID(context.Background(), postID)
		require.NoError(t, err)
		assert.Equal(t, "My Title", stored.Title)
		assert.Equal(t, domain.PostStatusPublished, stored.Status)
		assert.Equal(t, "Page summary.", stored.Content, "empty content keeps the summary")

		names, err := tags.GetTagNamesByPostID(context.Background(), postID)
		require.NoError(t, err)
		assert.Equal(t, []string{"go"}, names)
	})

	t.Run("another user's post is not found", func(t *testing.T) {
		svc, _, _, postID := setup(t)

		err := svc.UpdatePost(context.Background(), &model.UpdatePostRequest{
			Title:  "Hijack",
			PostID: postID,
			UserID: int64Ptr(7),
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	posts := newFakePostStore()
	svc := NewPostService(posts, newFakeTagStore(), &stubSummarizer{})

	resp, err := svc.CreatePost(context.Background(), &model.CreatePostRequest{
		URL:    "https://example.com/article",
		UserID: int64Ptr(42),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(context.Background(), &model.DeletePostRequest{
		PostID: resp.PostID,
		UserID: int64Ptr(42),
	}))

	_, err = posts.GetPostByID(context.Background(), resp.PostID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "deleted posts are hidden, not erased")
}

func TestCreateOrUpdateMemo(t *testing.T) {
	setup := func(t *testing.T, publish bool) (MemoService, *fakePostStore, int64) {
		t.Helper()
		posts := newFakePostStore()
		tags := newFakeTagStore()
		postSvc := NewPostService(posts, tags, &stubSummarizer{})

		resp, err := postSvc.CreatePost(context.Background(), &model.CreatePostRequest{
			URL:    "https://example.com/article",
			UserID: int64Ptr(42),
		})
		require.NoError(t, err)

		if publish {
			require.NoError(t, postSvc.UpdatePost(context.Background(), &model.UpdatePostRequest{
				Title:   "Saved",
				Publish: true,
				PostID:  resp.PostID,
				UserID:  int64Ptr(42),
			}))
		}

		return NewMemoService(posts), posts, resp.PostID
	}

	t.Run("writes the memo on a published post", func(t *testing.T) {
		svc, posts, postID := setup(t, true)

		err := svc.CreateOrUpdateMemo(context.Background(), &model.CreateUpdateMemoRequest{
			Content: "Read this again next week",
			PostID:  postID,
			UserID:  int64Ptr(42),
		})
		require.NoError(t, err)

		stored, err := posts.GetPostByID(context.Background(), postID)
		require.NoError(t, err)
		assert.Equal(t, "Read this again next week", stored.Memo)
		assert.NotNil(t, stored.MemoCreatedAt)
	})

	t.Run("temp posts cannot carry memos", func(t *testing.T) {
		svc, _, postID := setup(t, false)

		err := svc.CreateOrUpdateMemo(context.Background(), &model.CreateUpdateMemoRequest{
			Content: "too early",
			PostID:  postID,
			UserID:  int64Ptr(42),
		})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
