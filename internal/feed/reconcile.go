package feed

import (
	"context"
	"time"

	"github.com/Reyy01/Connectly/internal/storage"
	"go.uber.org/zap"
)

// Sweeper is the corrective read behind the store's weak-consistency policy.
// Post creation and deletion touch three documents without a transaction, and
// counters are read-increment-write caches, so two kinds of garbage can
// accumulate: orphaned list documents no post references, and counters that
// drifted from the live list lengths. The sweeper periodically removes the
// former and rewrites the latter.
type Sweeper struct {
	logger   *zap.SugaredLogger
	store    storage.Store
	interval time.Duration
}

func NewSweeper(l *zap.SugaredLogger, s storage.Store, interval time.Duration) *Sweeper {
	return &Sweeper{logger: l, store: s, interval: interval}
}

// Run sweeps every interval until ctx is cancelled.
func (w *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := w.Sweep(ctx); err != nil {
				w.logger.Errorf("Sweep failed: %s.", err)
			}
		}
	}
}

// Sweep performs one reconciliation pass. Each repair is an independent
// idempotent write; a failure aborts the pass and the next tick retries.
func (w *Sweeper) Sweep(ctx context.Context) error {
	var posts []Post
	if err := w.store.FindAll(ctx, storage.CollPosts, nil, &posts); err != nil {
		return err
	}

	commentRefs := make(map[string]bool, len(posts))
	reactionRefs := make(map[string]bool, len(posts))
	for _, p := range posts {
		commentRefs[p.Comments] = true
		reactionRefs[p.Reactions] = true
	}

	var commentLists []CommentList
	if err := w.store.FindAll(ctx, storage.CollComments, nil, &commentLists); err != nil {
		return err
	}
	for _, l := range commentLists {
		if !commentRefs[l.ID] {
			if err := w.store.DeleteByID(ctx, storage.CollComments, l.ID); err != nil {
				w.logger.Warnf("Couldn't delete orphaned comment list %s: %s.", l.ID, err)
				continue
			}
			w.logger.Infof("Deleted orphaned comment list %s.", l.ID)
		}
	}

	var reactionLists []ReactionList
	if err := w.store.FindAll(ctx, storage.CollReactions, nil, &reactionLists); err != nil {
		return err
	}
	for _, l := range reactionLists {
		if !reactionRefs[l.ID] {
			if err := w.store.DeleteByID(ctx, storage.CollReactions, l.ID); err != nil {
				w.logger.Warnf("Couldn't delete orphaned reaction list %s: %s.", l.ID, err)
				continue
			}
			w.logger.Infof("Deleted orphaned reaction list %s.", l.ID)
		}
	}

	for _, p := range posts {
		if err := w.repairCounters(ctx, p); err != nil {
			w.logger.Warnf("Couldn't repair counters of post %s: %s.", p.ID, err)
		}
	}
	return nil
}

// repairCounters rewrites the post's counters to the live list lengths when
// they drifted apart.
func (w *Sweeper) repairCounters(ctx context.Context, p Post) error {
	fields := storage.Fields{}

	var comments CommentList
	if err := w.store.FindByID(ctx, storage.CollComments, p.Comments, &comments); err == nil {
		if n := len(comments.Comments); n != p.CommentsCount {
			fields["commentsCount"] = n
		}
	}

	var reactions ReactionList
	if err := w.store.FindByID(ctx, storage.CollReactions, p.Reactions, &reactions); err == nil {
		if n := len(reactions.Reactions); n != p.ReactionsCount {
			fields["reactionsCount"] = n
		}
	}

	if len(fields) == 0 {
		return nil
	}
	w.logger.Infof("Repairing drifted counters of post %s.", p.ID)
	return w.store.UpdateFields(ctx, storage.CollPosts, p.ID, fields)
}
