package feed

import (
	"context"
	"math/rand"
	"net/http"
	"sort"

	"github.com/Reyy01/Connectly/internal/storage"
)

// DefaultPageSize is used when a caller supplies no page size.
const DefaultPageSize = 10

// GetFeed returns one page of the global feed. Posts are ranked by reaction
// count, then comment count, then recency, and the ranked set is then
// shuffled before the page is cut: repeated calls for the same page may
// return different posts. That trades stable paging for feed freshness and
// is deliberate.
func (s *Service) GetFeed(ctx context.Context, page, pageSize int) (*Page, error) {
	var posts []Post
	if err := s.store.FindAll(ctx, storage.CollPosts, nil, &posts); err != nil {
		return nil, errStorage(http.StatusInternalServerError, err)
	}
	if len(posts) == 0 {
		return nil, errNotFound("No posts found!")
	}

	rankPosts(posts)
	rand.Shuffle(len(posts), func(i, j int) {
		posts[i], posts[j] = posts[j], posts[i]
	})

	return paginate(posts, page, pageSize)
}

// GetUserFeed returns one page of a single user's posts in insertion order,
// with the same page arithmetic as GetFeed but no ranking or shuffling.
func (s *Service) GetUserFeed(ctx context.Context, ownerID string, page, pageSize int) (*Page, error) {
	var posts []Post
	if err := s.store.FindAll(ctx, storage.CollPosts, storage.Filter{"postedBy": ownerID}, &posts); err != nil {
		return nil, errStorage(http.StatusInternalServerError, err)
	}
	return paginate(posts, page, pageSize)
}

// rankPosts sorts descending by reaction count, comment count, then creation
// time, newest first.
func rankPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if a.ReactionsCount != b.ReactionsCount {
			return a.ReactionsCount > b.ReactionsCount
		}
		if a.CommentsCount != b.CommentsCount {
			return a.CommentsCount > b.CommentsCount
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// paginate cuts the 1-based page out of posts. A page beyond
// ceil(len/pageSize) is out of range; so is a user subset with no posts.
func paginate(posts []Post, page, pageSize int) (*Page, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	maxPage := (len(posts) + pageSize - 1) / pageSize
	if page < 1 || page > maxPage {
		return nil, errPageRange()
	}

	skip := (page - 1) * pageSize
	end := skip + pageSize
	if end > len(posts) {
		end = len(posts)
	}
	return &Page{CurrentPage: page, MaxPage: maxPage, Posts: posts[skip:end]}, nil
}
