package cfg

import "time"

type Cfg struct {
	// Server configuration
	Port        string
	WorkerCount int

	// Main forum configuration
	ForumsDir       string
	Title           string
	AuthorsURL      string
	PostsURL        string
	FetchTimeout    int // seconds, 0 disables the timeout
	ConcurrentFetch bool

	// Presentation
	Timezone string
	Location *time.Location
	Locale   string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
