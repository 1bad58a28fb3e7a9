package forum

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Registry holds the views served by the process, keyed by forum name.
type Registry struct {
	views map[string]*View
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string]*View),
	}
}

// BuildRegistry creates one view per config, all sharing the HTTP client.
func BuildRegistry(configCache *ConfigCache, client *http.Client, userAgent string) (*Registry, error) {
	registry := NewRegistry()
	fetcher := NewHTTPFetcher(client, userAgent)

	for _, forumConfig := range configCache.GetConfigs() {
		location, err := time.LoadLocation(forumConfig.Settings.Timezone)
		if err != nil {
			return nil, fmt.Errorf("forum %s: invalid timezone: %w", forumConfig.Name, err)
		}

		view := NewView(forumConfig, NewLoader(forumConfig, fetcher), NewDateFormatter(location))
		registry.Add(view)
	}

	return registry, nil
}

func (r *Registry) Add(view *View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[view.Name()] = view
}

func (r *Registry) Get(name string) (*View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	view, ok := r.views[name]
	return view, ok
}

// All returns the views sorted by name.
func (r *Registry) All() []*View {
	r.mu.RLock()
	defer r.mu.RUnlock()

	views := make([]*View, 0, len(r.views))
	for _, v := range r.views {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].Name() < views[j].Name()
	})
	return views
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}
