package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lysyi3m/forum-view/app/forum"
)

// MockLoader implements forum.DataLoader for testing
type MockLoader struct {
	calls atomic.Int32
	err   error
	block chan struct{}
}

func (m *MockLoader) Run(ctx context.Context) ([]forum.Author, []forum.Post, error) {
	m.calls.Add(1)
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, nil, m.err
	}
	return []forum.Author{{ID: 1, Name: "Alice"}}, []forum.Post{{ID: 10, AuthorID: 1}}, nil
}

func newMockView(name string, loader forum.DataLoader) *forum.View {
	config := &forum.Config{
		Name:       name,
		Title:      name,
		AuthorsURL: "https://e.com/a.json",
		PostsURL:   "https://e.com/p.json",
	}
	return forum.NewView(config, loader, forum.NewDateFormatter(time.UTC))
}

func waitForStatus(t *testing.T, view *forum.View, expected forum.Status) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if view.Snapshot().Status == expected {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("View %s did not reach %s, still %s", view.Name(), expected, view.Snapshot().Status)
}

func TestSchedulerActivatesEveryView(t *testing.T) {
	okLoader := &MockLoader{}
	failLoader := &MockLoader{err: forum.ErrDataFetch}

	registry := forum.NewRegistry()
	okView := newMockView("ok", okLoader)
	failView := newMockView("fail", failLoader)
	registry.Add(okView)
	registry.Add(failView)

	scheduler := NewScheduler(registry, 2)
	scheduler.Start()
	defer scheduler.Stop()

	waitForStatus(t, okView, forum.StatusReady)
	waitForStatus(t, failView, forum.StatusError)

	if okLoader.calls.Load() != 1 || failLoader.calls.Load() != 1 {
		t.Errorf("Expected one load per view, got ok=%d fail=%d", okLoader.calls.Load(), failLoader.calls.Load())
	}
}

func TestSchedulerStartIsIdempotent(t *testing.T) {
	loader := &MockLoader{}
	registry := forum.NewRegistry()
	view := newMockView("once", loader)
	registry.Add(view)

	scheduler := NewScheduler(registry, 1)
	scheduler.Start()
	scheduler.Start()
	defer scheduler.Stop()

	waitForStatus(t, view, forum.StatusReady)

	if err := scheduler.EnqueueTask(NewActivateViewTask(view)); err != nil {
		t.Fatalf("Expected enqueue to succeed, got: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if loader.calls.Load() != 1 {
		t.Errorf("Expected exactly one load, got %d", loader.calls.Load())
	}
}

func TestSchedulerStopCancelsLoads(t *testing.T) {
	loader := &MockLoader{block: make(chan struct{})}
	registry := forum.NewRegistry()
	view := newMockView("slow", loader)
	registry.Add(view)

	scheduler := NewScheduler(registry, 1)
	scheduler.Start()

	deadline := time.Now().Add(2 * time.Second)
	for loader.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	done := make(chan struct{})
	go func() {
		scheduler.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}

	if view.Snapshot().Status != forum.StatusError {
		t.Errorf("Expected canceled load to end in error, got %s", view.Snapshot().Status)
	}

	err := scheduler.EnqueueTask(NewActivateViewTask(view))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled after stop, got: %v", err)
	}
}

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeActivateView, "main")

	if task.ID == "" {
		t.Error("Expected task ID")
	}
	if other := NewTask(TaskTypeActivateView, "main"); other.ID == task.ID {
		t.Error("Expected unique task IDs")
	}
	if task.GetType() != TaskTypeActivateView || task.GetForumName() != "main" {
		t.Errorf("Unexpected task: %+v", task)
	}
	if task.GetDuration() != 0 {
		t.Error("Expected zero duration before start")
	}

	task.Start()
	if task.StartedAt == nil {
		t.Error("Expected start time")
	}
}

func TestActivateViewTaskCanceledContext(t *testing.T) {
	loader := &MockLoader{}
	task := NewActivateViewTask(newMockView("canceled", loader))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := task.Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if loader.calls.Load() != 0 {
		t.Error("Expected no load for canceled task")
	}
}
