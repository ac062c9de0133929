package feed

import (
	"context"
	"net/http"
	"testing"

	"github.com/Reyy01/Connectly/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment_AppendsInOrderAndCounts(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	owner := addUser(t, store, "alice")
	author := addUser(t, store, "bob")

	postID, err := s.CreatePost(ctx, owner, "alice", "t", "b")
	require.NoError(t, err)

	require.NoError(t, s.AddComment(ctx, postID, author, "bob", "first"))
	require.NoError(t, s.AddComment(ctx, postID, author, "bob", "second"))
	require.NoError(t, s.AddComment(ctx, postID, author, "bob", "third"))

	p := getPost(t, store, postID)
	assert.Equal(t, 3, p.CommentsCount)

	list := getComments(t, store, p.Comments)
	require.Len(t, list.Comments, 3)
	assert.Equal(t, "first", list.Comments[0].Comment)
	assert.Equal(t, "second", list.Comments[1].Comment)
	assert.Equal(t, "third", list.Comments[2].Comment)
	assert.NotEmpty(t, list.Comments[0].ID)
	assert.NotEqual(t, list.Comments[0].ID, list.Comments[1].ID)
}

func TestAddComment_UnknownUserForbidden(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	owner := addUser(t, store, "alice")

	postID, err := s.CreatePost(ctx, owner, "alice", "t", "b")
	require.NoError(t, err)

	requireCode(t, s.AddComment(ctx, postID, "ghost", "ghost", "boo"), http.StatusForbidden)
	assert.Equal(t, 0, getPost(t, store, postID).CommentsCount)
}

func TestAddComment_MissingPost(t *testing.T) {
	s, store := newTestService()
	u := addUser(t, store, "alice")

	requireCode(t, s.AddComment(context.Background(), "no-such-post", u, "alice", "hi"), http.StatusNotFound)
}

func TestEditComment_ReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	owner := addUser(t, store, "alice")
	author := addUser(t, store, "bob")
	successor := addUser(t, store, "carol")

	postID, err := s.CreatePost(ctx, owner, "alice", "t", "b")
	require.NoError(t, err)
	require.NoError(t, s.AddComment(ctx, postID, author, "bob", "one"))
	require.NoError(t, s.AddComment(ctx, postID, author, "bob", "two"))

	p := getPost(t, store, postID)
	target := getComments(t, store, p.Comments).Comments[0]

	require.NoError(t, s.EditComment(ctx, p.Comments, target.ID, author, successor, "carol", "edited"))

	list := getComments(t, store, p.Comments)
	require.Len(t, list.Comments, 2)
	// Identity and position survive the edit; author and text are replaced.
	assert.Equal(t, target.ID, list.Comments[0].ID)
	assert.Equal(t, successor, list.Comments[0].CommentBy)
	assert.Equal(t, "carol", list.Comments[0].Name)
	assert.Equal(t, "edited", list.Comments[0].Comment)
	assert.Equal(t, "two", list.Comments[1].Comment)
	assert.Equal(t, 2, getPost(t, store, postID).CommentsCount)
}

func TestEditComment_OnlyCurrentAuthor(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	owner := addUser(t, store, "alice")
	author := addUser(t, store, "bob")
	imposter := addUser(t, store, "mallory")

	postID, err := s.CreatePost(ctx, owner, "alice", "t", "b")
	require.NoError(t, err)
	require.NoError(t, s.AddComment(ctx, postID, author, "bob", "mine"))

	p := getPost(t, store, postID)
	target := getComments(t, store, p.Comments).Comments[0]

	// Naming themselves as the new author must not get an imposter past the
	// gate: authorization checks the stored author.
	err = s.EditComment(ctx, p.Comments, target.ID, imposter, imposter, "mallory", "hijacked")
	requireCode(t, err, http.StatusUnauthorized)

	assert.Equal(t, "mine", getComments(t, store, p.Comments).Comments[0].Comment)
}

func TestEditComment_Missing(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	owner := addUser(t, store, "alice")

	postID, err := s.CreatePost(ctx, owner, "alice", "t", "b")
	require.NoError(t, err)
	p := getPost(t, store, postID)

	requireCode(t, s.EditComment(ctx, "no-such-list", "x", owner, owner, "alice", "y"), http.StatusNotFound)
	requireCode(t, s.EditComment(ctx, p.Comments, "no-such-comment", owner, owner, "alice", "y"), http.StatusNotFound)
}

func TestDeleteComment_RemovesPreservingOrder(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	owner := addUser(t, store, "alice")
	author := addUser(t, store, "bob")

	postID, err := s.CreatePost(ctx, owner, "alice", "t", "b")
	require.NoError(t, err)
	for _, text := range []string{"a", "b", "c"} {
		require.NoError(t, s.AddComment(ctx, postID, author, "bob", text))
	}

	p := getPost(t, store, postID)
	target := getComments(t, store, p.Comments).Comments[1]

	require.NoError(t, s.DeleteComment(ctx, p.Comments, target.ID, author))

	list := getComments(t, store, p.Comments)
	require.Len(t, list.Comments, 2)
	assert.Equal(t, "a", list.Comments[0].Comment)
	assert.Equal(t, "c", list.Comments[1].Comment)
	assert.Equal(t, 2, getPost(t, store, postID).CommentsCount)
}

func TestDeleteComment_OnlyAuthor(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	owner := addUser(t, store, "alice")
	author := addUser(t, store, "bob")

	postID, err := s.CreatePost(ctx, owner, "alice", "t", "b")
	require.NoError(t, err)
	require.NoError(t, s.AddComment(ctx, postID, author, "bob", "hi"))

	p := getPost(t, store, postID)
	target := getComments(t, store, p.Comments).Comments[0]

	// Even the post's owner can't delete someone else's comment.
	requireCode(t, s.DeleteComment(ctx, p.Comments, target.ID, owner), http.StatusUnauthorized)
	assert.Equal(t, 1, getPost(t, store, postID).CommentsCount)
}

func TestDeleteComment_CounterFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	owner := addUser(t, store, "alice")
	author := addUser(t, store, "bob")

	postID, err := s.CreatePost(ctx, owner, "alice", "t", "b")
	require.NoError(t, err)
	require.NoError(t, s.AddComment(ctx, postID, author, "bob", "hi"))

	// Simulate counter drift: the cached count lags behind the list.
	p := getPost(t, store, postID)
	require.NoError(t, store.UpdateFields(ctx, storage.CollPosts, postID, storage.Fields{"commentsCount": 0}))

	target := getComments(t, store, p.Comments).Comments[0]
	require.NoError(t, s.DeleteComment(ctx, p.Comments, target.ID, author))

	assert.Equal(t, 0, getPost(t, store, postID).CommentsCount)
}

func TestCommentCounterMatchesAddsMinusDeletes(t *testing.T) {
	ctx := context.Background()
	s, store := newTestService()
	owner := addUser(t, store, "alice")
	author := addUser(t, store, "bob")

	postID, err := s.CreatePost(ctx, owner, "alice", "t", "b")
	require.NoError(t, err)

	const adds, deletes = 5, 3
	for i := 0; i < adds; i++ {
		require.NoError(t, s.AddComment(ctx, postID, author, "bob", "x"))
	}
	p := getPost(t, store, postID)
	for i := 0; i < deletes; i++ {
		list := getComments(t, store, p.Comments)
		require.NoError(t, s.DeleteComment(ctx, p.Comments, list.Comments[0].ID, author))
	}

	assert.Equal(t, adds-deletes, getPost(t, store, postID).CommentsCount)
}
