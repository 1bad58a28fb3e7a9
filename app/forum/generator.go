package forum

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"mime"
	"path"
	"strings"
	"time"
)

// Channel describes the RSS channel wrapping a forum feed.
type Channel struct {
	Name     string
	Title    string
	Link     string
	SelfLink string
	Timezone string
}

type Generator struct {
	version string
}

func NewGenerator(version string) *Generator {
	return &Generator{version: version}
}

func (g *Generator) Run(channel Channel, items []FeedItem, formatter *DateFormatter) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", channel.Title, 4)
	g.writeElement(&buf, "link", channel.Link, 4)
	g.writeElement(&buf, "description", fmt.Sprintf("Posts of %s (times in %s)", channel.Title, channel.Timezone), 4)

	if channel.SelfLink != "" {
		buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
			html.EscapeString(channel.SelfLink)))
	}

	g.writeElement(&buf, "lastBuildDate", time.Now().In(formatter.Location()).Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Forum-View/%s", g.version), 4)
	g.writeElement(&buf, "language", "en", 4)

	for _, item := range items {
		g.writeItem(&buf, channel.Name, item, formatter)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, forumName string, item FeedItem, formatter *DateFormatter) {
	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"false\">")
	xml.EscapeText(buf, []byte(fmt.Sprintf("%s-post-%d", forumName, item.Post.ID)))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", item.Post.Title, 6)
	g.writeElement(buf, "description", item.Post.Body, 6)

	if publishedAt, err := formatter.Parse(item.Post.CreatedAt); err == nil {
		g.writeElement(buf, "pubDate", publishedAt.Format(time.RFC1123Z), 6)
	}

	g.writeElement(buf, "author", item.AuthorName(), 6)

	if item.Post.ImageURL != "" {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"%s\" />\n",
			html.EscapeString(item.Post.ImageURL),
			html.EscapeString(g.imageType(item.Post.ImageURL))))
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) imageType(imageURL string) string {
	ext := strings.ToLower(path.Ext(strings.SplitN(imageURL, "?", 2)[0]))
	if t := mime.TypeByExtension(ext); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
