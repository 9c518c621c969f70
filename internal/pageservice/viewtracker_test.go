package pageservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewTracker(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("increments once across re-renders", func(t *testing.T) {
		calls := 0
		tracker := NewViewTracker(1, 5, func(ctx context.Context, id int) (int, error) {
			calls++
			assert.Equal(t, 1, id)
			return 6, nil
		}, logger)

		tracker.Rendered(context.Background(), false)
		tracker.Rendered(context.Background(), false)
		tracker.Rendered(context.Background(), false)

		assert.Equal(t, 1, calls)
		assert.Equal(t, 6, tracker.Views())
	})

	t.Run("never fires during the fallback loading state", func(t *testing.T) {
		calls := 0
		tracker := NewViewTracker(1, 5, func(ctx context.Context, id int) (int, error) {
			calls++
			return 6, nil
		}, logger)

		tracker.Rendered(context.Background(), true)
		tracker.Rendered(context.Background(), true)

		assert.Equal(t, 0, calls)
		assert.Equal(t, 5, tracker.Views())

		// the id resolves and the next render counts the visit
		tracker.Rendered(context.Background(), false)
		assert.Equal(t, 1, calls)
	})

	t.Run("failure is non-fatal and keeps the displayed count", func(t *testing.T) {
		tracker := NewViewTracker(1, 5, func(ctx context.Context, id int) (int, error) {
			return 0, errors.New("store unavailable")
		}, logger)

		tracker.Rendered(context.Background(), false)

		assert.Equal(t, 5, tracker.Views())
	})
}
