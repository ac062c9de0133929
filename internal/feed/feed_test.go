package feed

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankPosts(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := []Post{
		{ID: "old-quiet", ReactionsCount: 0, CommentsCount: 0, CreatedAt: base},
		{ID: "new-quiet", ReactionsCount: 0, CommentsCount: 0, CreatedAt: base.Add(time.Hour)},
		{ID: "discussed", ReactionsCount: 0, CommentsCount: 7, CreatedAt: base},
		{ID: "loved", ReactionsCount: 9, CommentsCount: 0, CreatedAt: base},
		{ID: "viral", ReactionsCount: 9, CommentsCount: 3, CreatedAt: base},
	}

	rankPosts(posts)

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"viral", "loved", "discussed", "new-quiet", "old-quiet"}, ids)

	// Primary key is non-increasing down the ranked slice.
	for i := 1; i < len(posts); i++ {
		assert.GreaterOrEqual(t, posts[i-1].ReactionsCount, posts[i].ReactionsCount)
	}
}

func TestGetFeed_EmptyStore(t *testing.T) {
	s, _ := newTestService()

	_, err := s.GetFeed(context.Background(), 1, 10)
	requireCode(t, err, http.StatusNotFound)
}

func TestGetFeed_PageOutOfRange(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	u := addUser(t, store, "alice")

	for i := 0; i < 3; i++ {
		_, err := s.CreatePost(ctx, u, "alice", "t", "b")
		require.NoError(t, err)
	}

	// 3 posts, page size 2: maxPage 2.
	_, err := s.GetFeed(ctx, 3, 2)
	requireCode(t, err, http.StatusNotFound)

	page, err := s.GetFeed(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 2, page.MaxPage)
	assert.Len(t, page.Posts, 1)
}

func TestGetFeed_PageSizes(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	u := addUser(t, store, "alice")

	for i := 0; i < 25; i++ {
		_, err := s.CreatePost(ctx, u, "alice", "t", "b")
		require.NoError(t, err)
	}

	page, err := s.GetFeed(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.MaxPage)
	assert.Len(t, page.Posts, 10)

	// Last page carries the remainder.
	page, err = s.GetFeed(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 5)
}

func TestGetUserFeed_InsertionOrderUnshuffled(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	alice := addUser(t, store, "alice")
	bob := addUser(t, store, "bob")

	first, err := s.CreatePost(ctx, alice, "alice", "a1", "b")
	require.NoError(t, err)
	_, err = s.CreatePost(ctx, bob, "bob", "noise", "b")
	require.NoError(t, err)
	second, err := s.CreatePost(ctx, alice, "alice", "a2", "b")
	require.NoError(t, err)

	// Engagement must not reorder a user feed.
	require.NoError(t, s.React(ctx, second, bob, ReactionLike))

	page, err := s.GetUserFeed(ctx, alice, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.MaxPage)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, first, page.Posts[0].ID)
	assert.Equal(t, second, page.Posts[1].ID)
}

func TestGetUserFeed_NoPostsIsOutOfRange(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	u := addUser(t, store, "alice")
	loner := addUser(t, store, "bob")

	_, err := s.CreatePost(ctx, u, "alice", "t", "b")
	require.NoError(t, err)

	_, err = s.GetUserFeed(ctx, loner, 1, 10)
	requireCode(t, err, http.StatusNotFound)
}

func TestGetUserFeed_Paged(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	u := addUser(t, store, "alice")

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		id, err := s.CreatePost(ctx, u, "alice", "t", "b")
		require.NoError(t, err)
		ids = append(ids, id)
	}

	page, err := s.GetUserFeed(ctx, u, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.MaxPage)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, ids[2], page.Posts[0].ID)
	assert.Equal(t, ids[3], page.Posts[1].ID)
}

func TestPaginate_DefaultsPageSize(t *testing.T) {
	posts := make([]Post, DefaultPageSize+1)
	page, err := paginate(posts, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.MaxPage)
	assert.Len(t, page.Posts, DefaultPageSize)
}

func TestGetFeed_PageIsCutAfterShuffle(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	u := addUser(t, store, "alice")

	seen := make(map[string]bool)
	for i := 0; i < 6; i++ {
		id, err := s.CreatePost(ctx, u, "alice", "t", "b")
		require.NoError(t, err)
		seen[id] = true
	}

	// Whatever the shuffle did, a full-size page holds distinct stored posts.
	page, err := s.GetFeed(ctx, 1, 6)
	require.NoError(t, err)
	require.Len(t, page.Posts, 6)
	for _, p := range page.Posts {
		assert.True(t, seen[p.ID])
	}
}
