package retention

import (
	"context"
	"testing"
	"time"

	"logveil-hq/logveil/pkg/audit/storage"
)

func TestScheduler_StartAndStop(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	pruner := NewPruner(store, &Config{
		RetentionDays: 90,
		PruneSchedule: "0 3 * * *",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if !pruner.scheduler.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}

	next := pruner.NextPruning()
	if next == nil {
		t.Fatal("NextPruning() = nil, want a scheduled time")
	}
	if !next.After(time.Now()) {
		t.Errorf("NextPruning() = %v, want a future time", next)
	}

	pruner.Stop()
	if pruner.scheduler.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	pruner := NewPruner(store, &Config{
		RetentionDays: 90,
		PruneSchedule: "not a cron expression",
	})

	if err := pruner.Start(context.Background()); err == nil {
		t.Error("Start() with invalid schedule succeeded, want error")
	}
}

func TestScheduler_EmptyScheduleIsNoop(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	pruner := NewPruner(store, &Config{
		RetentionDays: 90,
		PruneSchedule: "",
	})

	if err := pruner.Start(context.Background()); err != nil {
		t.Fatalf("Start() with empty schedule failed: %v", err)
	}
	if pruner.scheduler.IsRunning() {
		t.Error("IsRunning() = true with empty schedule")
	}
	pruner.Stop()
}

func TestScheduler_StopViaContext(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	pruner := NewPruner(store, &Config{
		RetentionDays: 90,
		PruneSchedule: "0 3 * * *",
	})

	ctx, cancel := context.WithCancel(context.Background())
	if err := pruner.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	cancel()

	deadline := time.After(2 * time.Second)
	for pruner.scheduler.IsRunning() {
		select {
		case <-deadline:
			t.Fatal("scheduler still running after context cancellation")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
