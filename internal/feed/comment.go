package feed

import (
	"context"
	"errors"
	"net/http"

	"github.com/Reyy01/Connectly/internal/storage"
	"github.com/google/uuid"
)

// AddComment appends a comment to the post's comment list and bumps the
// post's comment counter. The two writes are separate statements; a crash in
// between leaves the counter stale by one until the sweeper repairs it.
func (s *Service) AddComment(ctx context.Context, postID, authorID, authorName, text string) error {
	ok, err := s.userExists(ctx, authorID)
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

	var list CommentList
	if err := s.store.FindByID(ctx, storage.CollComments, post.Comments, &list); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return errNotFound("Comment not found")
		}
		return errStorage(http.StatusInternalServerError, err)
	}

	list.Comments = append(list.Comments, Comment{
		ID:        uuid.NewString(),
		CommentBy: authorID,
		Name:      authorName,
		Comment:   text,
	})
	if err := s.store.UpdateFields(ctx, storage.CollComments, post.Comments, storage.Fields{
		"commentsList": list.Comments,
	}); err != nil {
		return errStorage(http.StatusInternalServerError, err)
	}

	if err := s.store.UpdateFields(ctx, storage.CollPosts, postID, storage.Fields{
		"commentsCount": post.CommentsCount + 1,
	}); err != nil {
		return errStorage(http.StatusInternalServerError, err)
	}
	return nil
}

// EditComment replaces a comment's author id, author name and text in place.
// Only the comment's current author may edit it; the gate checks the stored
// author, never the supplied replacement.
func (s *Service) EditComment(ctx context.Context, commentListID, commentID, editorID, newAuthorID, newAuthorName, newText string) error {
	var list CommentList
	if err := s.store.FindByID(ctx, storage.CollComments, commentListID, &list); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return errNotFound("Comment not found")
		}
		return errStorage(http.StatusInternalServerError, err)
	}

	i := indexOfComment(list.Comments, commentID)
	if i < 0 {
		return errNotFound("Comment not found in list")
	}

	if !canModify(editorID, list.Comments[i].CommentBy) {
		return errUnauthorized()
	}

	list.Comments[i].CommentBy = newAuthorID
	list.Comments[i].Name = newAuthorName
	list.Comments[i].Comment = newText

	if err := s.store.UpdateFields(ctx, storage.CollComments, commentListID, storage.Fields{
		"commentsList": list.Comments,
	}); err != nil {
		return errStorage(http.StatusInternalServerError, err)
	}
	return nil
}

// DeleteComment removes a comment from the list, preserving the order of the
// remaining entries, and decrements the counter of the post referencing that
// list, floored at zero.
func (s *Service) DeleteComment(ctx context.Context, commentListID, commentID, actorID string) error {
	var list CommentList
	if err := s.store.FindByID(ctx, storage.CollComments, commentListID, &list); err != nil {
		if errors.Is(err, storage.ErrNoRecord) {
			return errNotFound("Comment not found")
		}
		return errStorage(http.StatusInternalServerError, err)
	}

	i := indexOfComment(list.Comments, commentID)
	if i < 0 {
		return errNotFound("Comment not found in list")
	}

	if !canModify(actorID, list.Comments[i].CommentBy) {
		return errUnauthorized()
	}

	list.Comments = append(list.Comments[:i], list.Comments[i+1:]...)
	if err := s.store.UpdateFields(ctx, storage.CollComments, commentListID, storage.Fields{
		"commentsList": list.Comments,
	}); err != nil {
		return errStorage(http.StatusInternalServerError, err)
	}

	var posts []Post
	if err := s.store.FindAll(ctx, storage.CollPosts, storage.Filter{"comments": commentListID}, &posts); err != nil {
		return errStorage(http.StatusInternalServerError, err)
	}
	if len(posts) > 0 {
		count := posts[0].CommentsCount - 1
		if count < 0 {
			count = 0
		}
		if err := s.store.UpdateFields(ctx, storage.CollPosts, posts[0].ID, storage.Fields{
			"commentsCount": count,
		}); err != nil {
			return errStorage(http.StatusInternalServerError, err)
		}
	}
	return nil
}

func indexOfComment(comments []Comment, commentID string) int {
	for i, c := range comments {
		if c.ID == commentID {
			return i
		}
	}
	return -1
}
