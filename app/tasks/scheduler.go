package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lysyi3m/forum-view/app/forum"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	registry    *forum.Registry
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
	startOnce   sync.Once
}

func NewScheduler(registry *forum.Registry, workerCount int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	if workerCount < 1 {
		workerCount = 1
	}

	return &Scheduler{
		registry:    registry,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, max(100, registry.Count())),
	}
}

// Start launches the workers and enqueues one activation per view. Calling
// it again has no effect.
func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		for i := 0; i < s.workerCount; i++ {
			s.wg.Add(1)
			go s.worker(i)
		}

		s.enqueueStartupTasks()
	})
}

// Stop cancels in-flight loads and waits for the workers.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
	}

	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	views := s.registry.All()
	if len(views) == 0 {
		slog.Debug("No forum views registered")
		return
	}

	slog.Debug("Activating forum views", "count", len(views))

	for _, view := range views {
		if err := s.EnqueueTask(NewActivateViewTask(view)); err != nil {
			slog.Warn("Failed to enqueue ActivateViewTask", "forum", view.Name(), "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.taskQueue:
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	if err := task.Execute(s.ctx); err != nil {
		slog.Error("Worker task execution failed",
			"worker_id", workerID,
			"type", string(task.GetType()),
			"id", task.GetID(),
			"forum", task.GetForumName(),
			"error", err)
	}
}
