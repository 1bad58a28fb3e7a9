package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/text/language"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of workers activating forum views"`

	// Main forum configuration
	ForumsDir       string `long:"forums-dir" env:"FORUMS_DIR" default:"./forums" description:"Directory containing additional forum definitions (*.yml)"`
	Title           string `long:"title" env:"FORUM_TITLE" default:"MAQE Forum" description:"Title of the main forum"`
	AuthorsURL      string `long:"authors-url" env:"AUTHORS_URL" default:"https://maqe.github.io/json/authors.json" description:"Authors collection endpoint of the main forum"`
	PostsURL        string `long:"posts-url" env:"POSTS_URL" default:"https://maqe.github.io/json/posts.json" description:"Posts collection endpoint of the main forum"`
	FetchTimeout    int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"0" description:"Per-request timeout in seconds for the main forum (0 = none)"`
	ConcurrentFetch bool   `long:"concurrent-fetch" env:"CONCURRENT_FETCH" description:"Fetch authors and posts of the main forum concurrently"`

	// Presentation
	Timezone string `long:"timezone" env:"DISPLAY_TIMEZONE" default:"Asia/Bangkok" description:"Timezone post dates are displayed in"`
	Locale   string `long:"locale" env:"LOCALE" default:"en" description:"Display locale"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Forum View/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses command-line arguments and environment variables.
// It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs is Load with explicit arguments; nil means os.Args[1:].
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:            raw.Port,
		WorkerCount:     raw.WorkerCount,
		ForumsDir:       raw.ForumsDir,
		Title:           raw.Title,
		AuthorsURL:      raw.AuthorsURL,
		PostsURL:        raw.PostsURL,
		FetchTimeout:    raw.FetchTimeout,
		ConcurrentFetch: raw.ConcurrentFetch,
		Timezone:        raw.Timezone,
		Locale:          raw.Locale,
		UserAgent:       raw.UserAgent,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be positive, got %d", cfg.WorkerCount)
	}
	if cfg.FetchTimeout < 0 {
		return nil, fmt.Errorf("fetch timeout must be non-negative, got %d", cfg.FetchTimeout)
	}

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone '%s': %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	cfg.Locale = normalizeLocale(cfg.Locale)

	return cfg, nil
}

func loadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(timezone)
}

// normalizeLocale keeps the display language English. Dates are always
// rendered with English names, so other locales fall back to "en".
func normalizeLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		slog.Warn("Invalid locale, using default", "locale", locale, "default", "en", "error", err)
		return "en"
	}

	base, _ := tag.Base()
	if base.String() != "en" {
		slog.Warn("Unsupported locale, using default", "locale", locale, "default", "en")
		return "en"
	}

	return tag.String()
}
