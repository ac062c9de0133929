package feed

import (
	"context"
	"errors"
	"net/http"

	"github.com/Reyy01/Connectly/internal/storage"
)

// React applies the per-user reaction toggle to a post. Per (post, user)
// pair there are exactly three transitions:
//
//   - no existing entry: insert one of the given kind, counter +1
//   - existing entry of the same kind: remove it, counter -1 (floored at 0)
//   - existing entry of a different kind: retype it in place and refresh its
//     timestamp, counter unchanged
//
// Re-sending the same kind therefore retracts the reaction.
func (s *Service) React(ctx context.Context, postID, userID string, kind ReactionType) error {
	ok, err := s.userExists(ctx, userID)
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

	// The referenced list document is created lazily when absent (an orphaned
	// reference left by a partial post creation).
	listExists := true
	list := ReactionList{Reactions: []Reaction{}}
	if err := s.store.FindByID(ctx, storage.CollReactions, post.Reactions, &list); err != nil {
		if !errors.Is(err, storage.ErrNoRecord) {
			return errStorage(http.StatusInternalServerError, err)
		}
		listExists = false
	}

	delta := 0
	if i := indexOfReaction(list.Reactions, userID); i < 0 {
		list.Reactions = append(list.Reactions, Reaction{
			ReactedBy:    userID,
			ReactionType: kind,
			ReactOn:      s.now(),
		})
		delta = 1
	} else if list.Reactions[i].ReactionType == kind {
		list.Reactions = append(list.Reactions[:i], list.Reactions[i+1:]...)
		delta = -1
	} else {
		list.Reactions[i].ReactionType = kind
		list.Reactions[i].ReactOn = s.now()
	}

	postFields := storage.Fields{}
	if listExists {
		if err := s.store.UpdateFields(ctx, storage.CollReactions, post.Reactions, storage.Fields{
			"reactionsList": list.Reactions,
		}); err != nil {
			return errStorage(http.StatusInternalServerError, err)
		}
	} else {
		listID, err := s.store.Insert(ctx, storage.CollReactions, list)
		if err != nil {
			return errStorage(http.StatusInternalServerError, err)
		}
		postFields["reactions"] = listID
	}

	if delta != 0 {
		count := post.ReactionsCount + delta
		if count < 0 {
			count = 0
		}
		postFields["reactionsCount"] = count
	}
	if len(postFields) > 0 {
		if err := s.store.UpdateFields(ctx, storage.CollPosts, postID, postFields); err != nil {
			return errStorage(http.StatusInternalServerError, err)
		}
	}
	return nil
}

func indexOfReaction(reactions []Reaction, userID string) int {
	for i, r := range reactions {
		if r.ReactedBy == userID {
			return i
		}
	}
	return -1
}
