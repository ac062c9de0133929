package feed

import (
	"time"
)

// Post is the feed item document. ReactionsCount and CommentsCount are
// denormalized caches of the linked list documents' live entry counts; they
// are kept in sync by each committed mutation and repaired by the sweeper,
// and never go negative.
type Post struct {
	ID             string    `json:"_id,omitempty"`
	PostedBy       string    `json:"postedBy"`
	PostedByName   string    `json:"postedByName"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	ReactionsCount int       `json:"reactionsCount"`
	CommentsCount  int       `json:"commentsCount"`
	CreatedAt      time.Time `json:"createdAt"`

	// Reactions and Comments reference the post's ReactionList and
	// CommentList documents. The triad is created and destroyed together.
	Reactions string `json:"reactions"`
	Comments  string `json:"comments"`
}

// CommentList holds every comment of one post, in insertion order.
type CommentList struct {
	ID       string    `json:"_id,omitempty"`
	Comments []Comment `json:"commentsList"`
}

// Comment lives only inside its CommentList.
type Comment struct {
	ID        string `json:"_id"`
	CommentBy string `json:"commentBy"`
	Name      string `json:"name"`
	Comment   string `json:"comment"`
}

// ReactionList holds every reaction of one post, at most one per user.
type ReactionList struct {
	ID        string     `json:"_id,omitempty"`
	Reactions []Reaction `json:"reactionsList"`
}

// Reaction lives only inside its ReactionList, keyed by the reacting user.
type Reaction struct {
	ReactedBy    string       `json:"reactedBy"`
	ReactionType ReactionType `json:"reactionType"`
	ReactOn      time.Time    `json:"reactOn"`
}

// ReactionType is the enumerated reaction kind. The toggle only compares
// kinds for equality, so unknown kinds pass through untouched.
type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionHaha  ReactionType = "haha"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// Page is one page of a paginated feed result.
type Page struct {
	CurrentPage int    `json:"currentPage"`
	MaxPage     int    `json:"maxPage"`
	Posts       []Post `json:"postsList"`
}
