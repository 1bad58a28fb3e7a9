package forum

import (
	"errors"
	"time"
)

// Remote data types

type Author struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Place     string `json:"place"`
	AvatarURL string `json:"avatar_url"`
}

type Post struct {
	ID        int    `json:"id"`
	AuthorID  int    `json:"author_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	ImageURL  string `json:"image_url"`
	CreatedAt string `json:"created_at"` // ISO-8601-like, parsed only for display
}

// FeedItem is a post paired with its author. Author is nil when no author
// matches the post's AuthorID.
type FeedItem struct {
	Post   Post
	Author *Author
}

// View state types

type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// FetchErrorMessage is the only failure detail shown to readers.
const FetchErrorMessage = "An error occurred while fetching data."

// ErrDataFetch wraps every failure of the load sequence.
var ErrDataFetch = errors.New("data fetch failed")

// State is never mutated once published; transitions replace it.
type State struct {
	Status    Status
	Authors   []Author
	Posts     []Post
	Message   string
	UpdatedAt time.Time
}

// Configuration types

type Config struct {
	Name       string         // Derived from filename (without .yml extension)
	Title      string         `yaml:"title"`
	AuthorsURL string         `yaml:"authors_url"`
	PostsURL   string         `yaml:"posts_url"`
	Settings   ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Timezone        string `yaml:"timezone"`
	Timeout         int    `yaml:"timeout"` // seconds, 0 = no timeout
	ConcurrentFetch bool   `yaml:"concurrent_fetch"`
}
