package pageservice

import (
	"context"
	"log/slog"
	"sync"
)

// IncrementFunc records one view for a post and returns the new count.
type IncrementFunc func(ctx context.Context, id int) (int, error)

// ViewTracker is the client-local guard around the view counter: one tracker
// lives for one mounted detail view and fires the increment call at most once,
// no matter how often the view re-renders. It never fires while the page is
// still in its fallback loading state. This only deduplicates calls from one
// mount; the store legitimately adds 1 for every accepted call.
type ViewTracker struct {
	postID    int
	increment IncrementFunc
	logger    pageLogger

	mu      sync.Mutex
	counted bool
	views   int
}

func NewViewTracker(postID, initialViews int, increment IncrementFunc, logger *slog.Logger) *ViewTracker {
	return &ViewTracker{
		postID:    postID,
		increment: increment,
		logger:    logger,
		views:     initialViews,
	}
}

// Rendered is called on every render of the detail view. The first render
// after the page has left its loading state triggers the increment; a failed
// increment is logged and the displayed count stays unchanged.
func (t *ViewTracker) Rendered(ctx context.Context, loading bool) {
	if loading {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.counted {
		return
	}
	t.counted = true

	views, err := t.increment(ctx, t.postID)
	if err != nil {
		t.logger.Error("could not increment view count", slog.Int("post_id", t.postID), slog.String("error", err.Error()))
		return
	}

	t.views = views
}

// Views returns the locally displayed view count.
func (t *ViewTracker) Views() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.views
}
