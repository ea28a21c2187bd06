package store_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/starford/raido/internal/store"
	"github.com/starford/raido/internal/testutil"
)

func TestWatchDetectsExternalCommit(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, db, logger, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to install.
	time.Sleep(100 * time.Millisecond)

	// Commit through a second connection, as another process would.
	other, err := store.Open(db.Path())
	if err != nil {
		t.Fatal(err)
	}
	testutil.SeedTask(t, other, "external", 0)
	other.Close()

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("external commit not detected")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watch returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatchIgnoresOwnCommits(t *testing.T) {
	db := testutil.TestDB(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	go func() {
		_ = store.Watch(ctx, db, logger, func() {
			changed <- struct{}{}
		})
	}()
	time.Sleep(100 * time.Millisecond)

	// Commits on the watched connection do not advance its own
	// data_version, so no callback fires.
	testutil.SeedTask(t, db, "own write", 0)

	select {
	case <-changed:
		t.Fatal("own commit reported as external")
	case <-time.After(500 * time.Millisecond):
	}
}
