package storage

import (
	"context"
	"errors"
)

// Collections of the Connectly document store. Comments and Reactions hold
// one document per post (the post's comment list / reaction list), Users is
// read-only from this service's perspective.
const (
	CollPosts     = "Posts"
	CollComments  = "Comments"
	CollReactions = "Reactions"
	CollUsers     = "Users"
)

// ErrNoRecord is returned by lookups, updates and deletes that reference a
// document that is not in the store.
var ErrNoRecord = errors.New("record not found")

// Filter is an exact-match predicate over top-level document fields.
type Filter map[string]interface{}

// Fields is a partial document used for field-level updates; fields present
// replace the stored values, fields absent are left untouched.
type Fields map[string]interface{}

// Store is key-based CRUD over JSON documents. Every document carries its
// generated id under "_id". Calls are independent statements: the store gives
// no ordering or transaction guarantee across them.
type Store interface {
	// FindByID unmarshals the document with the given id into dest.
	FindByID(ctx context.Context, collection, id string, dest interface{}) error

	// FindAll unmarshals every document matching filter into dest (a pointer
	// to a slice), in insertion order. A nil filter matches everything.
	FindAll(ctx context.Context, collection string, filter Filter, dest interface{}) error

	// Insert stores doc under a freshly generated id and returns that id.
	Insert(ctx context.Context, collection string, doc interface{}) (string, error)

	// UpdateFields merges fields into the stored document.
	UpdateFields(ctx context.Context, collection, id string, fields Fields) error

	// DeleteByID removes the document with the given id.
	DeleteByID(ctx context.Context, collection, id string) error
}
