// Package feed is the post-interaction consistency and feed-ranking engine:
// it keeps a post, its comment list and its reaction list mutually consistent
// under concurrent edits, and serves ranked, paginated feed views.
//
// The engine talks to a document store with no cross-document transactions.
// Counter updates are read-increment-write, so concurrent mutations of one
// post can leave a counter transiently stale; the sweeper repairs drift.
package feed

import (
	"context"
	"errors"
	"time"

	"github.com/Reyy01/Connectly/internal/storage"
	"go.uber.org/zap"
)

// Service implements every feed operation over a storage.Store. Operations
// are request-scoped and independent; no in-process locking is used.
type Service struct {
	logger *zap.SugaredLogger
	store  storage.Store
	now    func() time.Time
}

func NewService(l *zap.SugaredLogger, s storage.Store) *Service {
	return &Service{logger: l, store: s, now: time.Now}
}

// canModify is the authorization gate: an actor may mutate a resource only if
// they are its owner (posts) or author (comments, reactions).
func canModify(actorID, ownerID string) bool {
	return actorID == ownerID
}

// userExists checks the read-only Users collection; every authoring action
// passes through here before touching post data.
func (s *Service) userExists(ctx context.Context, userID string) (bool, error) {
	var u map[string]interface{}
	err := s.store.FindByID(ctx, storage.CollUsers, userID, &u)
	if errors.Is(err, storage.ErrNoRecord) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
