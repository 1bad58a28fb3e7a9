package forum

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	resourceAuthors = "authors"
	resourcePosts   = "posts"
)

// Loader performs the two reads that populate a view.
type Loader struct {
	name       string
	authorsURL string
	postsURL   string
	timeout    time.Duration
	concurrent bool
	fetcher    Fetcher
}

func NewLoader(feedConfig *Config, fetcher Fetcher) *Loader {
	return &Loader{
		name:       feedConfig.Name,
		authorsURL: feedConfig.AuthorsURL,
		postsURL:   feedConfig.PostsURL,
		timeout:    time.Duration(feedConfig.Settings.Timeout) * time.Second,
		concurrent: feedConfig.Settings.ConcurrentFetch,
		fetcher:    fetcher,
	}
}

// Run fetches authors, then posts. Any failure is wrapped in ErrDataFetch
// and nothing fetched so far is returned.
func (l *Loader) Run(ctx context.Context) ([]Author, []Post, error) {
	var (
		authors []Author
		posts   []Post
		err     error
	)

	if l.concurrent {
		authors, posts, err = l.runConcurrent(ctx)
	} else {
		authors, posts, err = l.runSequential(ctx)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrDataFetch, err)
	}

	if authors == nil {
		authors = []Author{}
	}
	if posts == nil {
		posts = []Post{}
	}

	return authors, posts, nil
}

func (l *Loader) runSequential(ctx context.Context) ([]Author, []Post, error) {
	var authors []Author
	if err := l.fetch(ctx, resourceAuthors, l.authorsURL, &authors); err != nil {
		return nil, nil, err
	}

	var posts []Post
	if err := l.fetch(ctx, resourcePosts, l.postsURL, &posts); err != nil {
		return nil, nil, err
	}

	return authors, posts, nil
}

func (l *Loader) runConcurrent(ctx context.Context) ([]Author, []Post, error) {
	var (
		authors []Author
		posts   []Post
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return l.fetch(gctx, resourceAuthors, l.authorsURL, &authors)
	})

	g.Go(func() error {
		return l.fetch(gctx, resourcePosts, l.postsURL, &posts)
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return authors, posts, nil
}

func (l *Loader) fetch(ctx context.Context, resource, url string, v any) error {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	err := l.fetcher.FetchJSON(ctx, url, v)
	recordFetch(l.name, resource, err, time.Since(start).Seconds())

	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", resource, err)
	}
	return nil
}
