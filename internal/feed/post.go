package feed

import (
	"context"
	"errors"
	"net/http"

	"github.com/Reyy01/Connectly/internal/storage"
)

// CreatePost allocates the post's empty ReactionList and CommentList first,
// then writes the post referencing both, counters at zero. The three inserts
// are independent statements: a failure part-way leaves already-created child
// documents behind, and the sweeper reclaims them later.
func (s *Service) CreatePost(ctx context.Context, postedBy, postedByName, title, body string) (string, error) {
	reactionsID, err := s.store.Insert(ctx, storage.CollReactions, ReactionList{Reactions: []Reaction{}})
	if err != nil {
		return "", errStorage(http.StatusBadRequest, err)
	}

	commentsID, err := s.store.Insert(ctx, storage.CollComments, CommentList{Comments: []Comment{}})
	if err != nil {
		return "", errStorage(http.StatusBadRequest, err)
	}

	postID, err := s.store.Insert(ctx, storage.CollPosts, Post{
		PostedBy:     postedBy,
		PostedByName: postedByName,
		Title:        title,
		Body:         body,
		CreatedAt:    s.now(),
		Reactions:    reactionsID,
		Comments:     commentsID,
	})
	if err != nil {
		return "", errStorage(http.StatusBadRequest, err)
	}

	s.logger.Infof("User %s created post %s.", postedBy, postID)
	return postID, nil
}

// DeletePost removes the post and best-effort removes its linked list
// documents. Child removal failures are logged, not surfaced: the post itself
// being gone is what callers observe, and the sweeper collects stragglers.
func (s *Service) DeletePost(ctx context.Context, postID, actorID string) error {
	var post Post
	if err := s.store.FindByID(ctx, storage.CollPosts, postID, &post); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return errNotFound("Post not found")
		}
		return errStorage(http.StatusInternalServerError, err)
	}

	if !canModify(actorID, post.PostedBy) {
		return errUnauthorized()
	}

	if err := s.store.DeleteByID(ctx, storage.CollPosts, postID); err != nil {
		return errStorage(http.StatusBadRequest, err)
	}

	if err := s.store.DeleteByID(ctx, storage.CollReactions, post.Reactions); err != nil {
		s.logger.Warnf("Couldn't delete reaction list %s of post %s: %s.", post.Reactions, postID, err)
	}
	if err := s.store.DeleteByID(ctx, storage.CollComments, post.Comments); err != nil {
		s.logger.Warnf("Couldn't delete comment list %s of post %s: %s.", post.Comments, postID, err)
	}

	s.logger.Infof("User %s deleted post %s.", actorID, postID)
	return nil
}

// EditPost replaces the post's title and body. Editor existence and post
// ownership are two separate gates with distinct failures.
func (s *Service) EditPost(ctx context.Context, postID, editorID, title, body string) error {
	ok, err := s.userExists(ctx, editorID)
	if err != nil {
		return errStorage(http.StatusInternalServerError, err)
	}
	if !ok {
		return errInvalidUser()
	}

	var post Post
	if err := s.store.FindByID(ctx, storage.CollPosts, postID, &post); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return errNotFound("Post not found")
		}
		return errStorage(http.StatusInternalServerError, err)
	}

	if !canModify(editorID, post.PostedBy) {
		return errUnauthorized()
	}

	if err := s.store.UpdateFields(ctx, storage.CollPosts, postID, storage.Fields{
		"title": title,
		"body":  body,
	}); err != nil {
		return errStorage(http.StatusInternalServerError, err)
	}
	return nil
}
