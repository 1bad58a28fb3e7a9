package api

import (
	"github.com/lysyi3m/forum-view/app/forum"
	"golang.org/x/text/language"
)

type GeneratorInterface interface {
	Run(channel forum.Channel, items []forum.FeedItem, formatter *forum.DateFormatter) (string, error)
}

var _ GeneratorInterface = (*forum.Generator)(nil)

type Handler struct {
	registry  *forum.Registry
	generator GeneratorInterface
	locale    language.Tag
	version   string
}

// pageData feeds templates/forum.tmpl.
type pageData struct {
	Lang      string
	Title     string
	Loading   bool
	Failed    bool
	Message   string
	Timezone  string
	PostCount string
	Posts     []postView
}

type postView struct {
	ID         int
	AuthorName string
	AvatarURL  string
	PostedOn   string
	Title      string
	Body       string
	ImageURL   string
}

type feedResponse struct {
	Forum    string         `json:"forum"`
	Title    string         `json:"title"`
	Status   string         `json:"status"`
	Timezone string         `json:"timezone"`
	Message  string         `json:"message,omitempty"`
	Items    []itemResponse `json:"items"`
}

type itemResponse struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	ImageURL  string          `json:"image_url"`
	CreatedAt string          `json:"created_at"`
	PostedOn  string          `json:"posted_on"`
	Author    *authorResponse `json:"author"`
}

type authorResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Place     string `json:"place"`
	AvatarURL string `json:"avatar_url"`
}
