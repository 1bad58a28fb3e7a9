package forum

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type DataLoader interface {
	Run(ctx context.Context) ([]Author, []Post, error)
}

var _ DataLoader = (*Loader)(nil)

// View is one forum page. It starts in StatusLoading and moves exactly once
// to StatusReady or StatusError.
type View struct {
	config    *Config
	loader    DataLoader
	formatter *DateFormatter
	state     atomic.Pointer[State]
	once      sync.Once
}

func NewView(feedConfig *Config, loader DataLoader, formatter *DateFormatter) *View {
	v := &View{
		config:    feedConfig,
		loader:    loader,
		formatter: formatter,
	}
	v.publish(&State{
		Status:    StatusLoading,
		Authors:   []Author{},
		Posts:     []Post{},
		UpdatedAt: time.Now(),
	})
	return v
}

func (v *View) Name() string {
	return v.config.Name
}

func (v *View) Config() *Config {
	return v.config
}

func (v *View) Formatter() *DateFormatter {
	return v.formatter
}

// Activate runs the loader on the first call only. Later calls return
// immediately, whatever the outcome of the first one.
func (v *View) Activate(ctx context.Context) {
	v.once.Do(func() {
		v.load(ctx)
	})
}

func (v *View) Snapshot() *State {
	return v.state.Load()
}

// Items joins the current snapshot. It is empty unless the view is ready.
func (v *View) Items() []FeedItem {
	state := v.Snapshot()
	if state.Status != StatusReady {
		return []FeedItem{}
	}
	return Join(state.Posts, state.Authors)
}

func (v *View) load(ctx context.Context) {
	start := time.Now()

	authors, posts, err := v.loader.Run(ctx)
	if err != nil {
		slog.Warn("Forum load failed", "forum", v.Name(), "duration", time.Since(start))
		slog.Debug("Forum load failure cause", "forum", v.Name(), "error", err,
			"canceled", errors.Is(err, context.Canceled))

		v.publish(&State{
			Status:    StatusError,
			Authors:   []Author{},
			Posts:     []Post{},
			Message:   FetchErrorMessage,
			UpdatedAt: time.Now(),
		})
		return
	}

	v.publish(&State{
		Status:    StatusReady,
		Authors:   authors,
		Posts:     posts,
		UpdatedAt: time.Now(),
	})

	slog.Info("Forum loaded",
		"forum", v.Name(),
		"authors", len(authors),
		"posts", len(posts),
		"duration", time.Since(start))
}

func (v *View) publish(state *State) {
	v.state.Store(state)
	recordStatus(v.Name(), state.Status)
}
