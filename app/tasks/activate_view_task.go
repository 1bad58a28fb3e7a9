package tasks

import (
	"context"
	"log/slog"

	"github.com/lysyi3m/forum-view/app/forum"
)

type ActivateViewTask struct {
	Task
	view *forum.View
}

func NewActivateViewTask(view *forum.View) *ActivateViewTask {
	return &ActivateViewTask{
		Task: NewTask(TaskTypeActivateView, view.Name()),
		view: view,
	}
}

// Execute never fails: a failed load is a terminal view state, not a task error.
func (t *ActivateViewTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	t.view.Activate(ctx)

	slog.Info("Task completed",
		"type", string(t.Type),
		"forum", t.ForumName,
		"status", t.view.Snapshot().Status.String(),
		"duration", t.GetDuration())

	return nil
}
