package forum

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestGeneratorRun(t *testing.T) {
	generator := NewGenerator("test-version")

	items := []FeedItem{
		{
			Post:   Post{ID: 10, AuthorID: 1, Title: "Hi", Body: "Hello world", ImageURL: "https://img.test/p.png", CreatedAt: "2024-01-05T14:30:00Z"},
			Author: &Author{ID: 1, Name: "Alice", AvatarURL: "a.png"},
		},
		{
			Post: Post{ID: 11, AuthorID: 99, Title: "Orphan & friends", Body: "No author", CreatedAt: "garbage"},
		},
	}

	channel := Channel{
		Name:     "main",
		Title:    "MAQE Forum",
		Link:     "http://localhost:8080/forums/main",
		SelfLink: "http://localhost:8080/forums/main/rss",
		Timezone: "UTC",
	}

	rss, err := generator.Run(channel, items, newTestFormatter())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !strings.Contains(rss, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("RSS should contain XML declaration")
	}
	if !strings.Contains(rss, `<atom:link href="http://localhost:8080/forums/main/rss" rel="self" type="application/rss+xml" />`) {
		t.Error("RSS should contain atom:link self reference")
	}
	if !strings.Contains(rss, "<generator>Forum-View/test-version</generator>") {
		t.Error("RSS should contain generator with version")
	}
	if !strings.Contains(rss, "<pubDate>Fri, 05 Jan 2024 14:30:00 +0000</pubDate>") {
		t.Error("RSS should contain item pubDate")
	}
	if !strings.Contains(rss, "<title>Orphan &amp; friends</title>") {
		t.Error("RSS should escape item titles")
	}
	if !strings.Contains(rss, `<enclosure url="https://img.test/p.png" length="0" type="image/png" />`) {
		t.Error("RSS should contain image enclosure")
	}

	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("Generated RSS does not parse: %v", err)
	}

	if feed.Title != "MAQE Forum" {
		t.Errorf("Expected title 'MAQE Forum', got '%s'", feed.Title)
	}
	if len(feed.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(feed.Items))
	}

	first := feed.Items[0]
	if first.GUID != "main-post-10" {
		t.Errorf("Expected GUID 'main-post-10', got '%s'", first.GUID)
	}
	if first.Title != "Hi" || first.Description != "Hello world" {
		t.Errorf("Unexpected first item: %s / %s", first.Title, first.Description)
	}
	if first.Author == nil || first.Author.Name != "Alice" {
		t.Errorf("Expected author Alice, got %+v", first.Author)
	}
	if first.PublishedParsed == nil || !first.PublishedParsed.Equal(time.Date(2024, 1, 5, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("Unexpected published date: %v", first.PublishedParsed)
	}

	second := feed.Items[1]
	if second.Title != "Orphan & friends" {
		t.Errorf("Unexpected second title: %s", second.Title)
	}
	if second.PublishedParsed != nil {
		t.Errorf("Expected no pubDate for unparsable date, got %v", second.PublishedParsed)
	}
	if len(second.Enclosures) != 0 {
		t.Errorf("Expected no enclosure, got %d", len(second.Enclosures))
	}
}

func TestGeneratorRunEmpty(t *testing.T) {
	rss, err := NewGenerator("dev").Run(Channel{Name: "empty", Title: "Empty"}, nil, newTestFormatter())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if strings.Contains(rss, "<item>") {
		t.Error("RSS should not contain items")
	}
	if strings.Contains(rss, "atom:link href") {
		t.Error("RSS should omit self link when not set")
	}

	feed, err := gofeed.NewParser().ParseString(rss)
	if err != nil {
		t.Fatalf("Generated RSS does not parse: %v", err)
	}
	if len(feed.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(feed.Items))
	}
}

func TestGeneratorImageType(t *testing.T) {
	g := NewGenerator("dev")

	tests := map[string]string{
		"https://img.test/a.png":          "image/png",
		"https://img.test/a.gif?size=big": "image/gif",
		"https://img.test/a":              "image/jpeg",
		"https://img.test/a.txt":          "image/jpeg",
	}

	for url, expected := range tests {
		if got := g.imageType(url); got != expected {
			t.Errorf("imageType(%s) = %s, expected %s", url, got, expected)
		}
	}
}
