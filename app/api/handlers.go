package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/forum-view/app/forum"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func NewHandler(registry *forum.Registry, locale, version string) *Handler {
	return &Handler{
		registry:  registry,
		generator: forum.NewGenerator(version),
		locale:    language.Make(locale),
		version:   version,
	}
}

func (h *Handler) GetMainPage(c *gin.Context) {
	h.renderPage(c, forum.MainForum)
}

func (h *Handler) GetForumPage(c *gin.Context) {
	h.renderPage(c, c.Param("name"))
}

func (h *Handler) renderPage(c *gin.Context, name string) {
	view, ok := h.registry.Get(name)
	if !ok {
		slog.Debug("Forum not found", "forum", name)
		c.String(http.StatusNotFound, "Forum not found")
		return
	}

	state := view.Snapshot()
	data := pageData{
		Lang:     h.locale.String(),
		Title:    view.Config().Title,
		Timezone: view.Formatter().Location().String(),
	}

	switch state.Status {
	case forum.StatusLoading:
		data.Loading = true
	case forum.StatusError:
		data.Failed = true
		data.Message = state.Message
	case forum.StatusReady:
		items := view.Items()
		data.PostCount = h.postCount(len(items))
		data.Posts = lo.Map(items, func(item forum.FeedItem, _ int) postView {
			return postView{
				ID:         item.Post.ID,
				AuthorName: item.AuthorName(),
				AvatarURL:  item.AuthorAvatarURL(),
				PostedOn:   view.Formatter().Format(item.Post.CreatedAt),
				Title:      item.Post.Title,
				Body:       item.Post.Body,
				ImageURL:   item.Post.ImageURL,
			}
		})
	}

	c.Header("X-Forum-Status", state.Status.String())
	c.HTML(http.StatusOK, "forum.tmpl", data)
}

func (h *Handler) GetForumJSON(c *gin.Context) {
	name := c.Param("name")
	view, ok := h.registry.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Forum not found"})
		return
	}

	state := view.Snapshot()
	response := feedResponse{
		Forum:    name,
		Title:    view.Config().Title,
		Status:   state.Status.String(),
		Timezone: view.Formatter().Location().String(),
		Message:  state.Message,
		Items:    []itemResponse{},
	}

	if state.Status == forum.StatusReady {
		response.Items = lo.Map(view.Items(), func(item forum.FeedItem, _ int) itemResponse {
			resp := itemResponse{
				ID:        item.Post.ID,
				Title:     item.Post.Title,
				Body:      item.Post.Body,
				ImageURL:  item.Post.ImageURL,
				CreatedAt: item.Post.CreatedAt,
				PostedOn:  view.Formatter().Format(item.Post.CreatedAt),
			}
			if item.Author != nil {
				resp.Author = &authorResponse{
					ID:        item.Author.ID,
					Name:      item.Author.Name,
					Role:      item.Author.Role,
					Place:     item.Author.Place,
					AvatarURL: item.Author.AvatarURL,
				}
			}
			return resp
		})
	}

	c.Header("X-Feed-Items", strconv.Itoa(len(response.Items)))
	c.JSON(statusCode(state.Status), response)
}

func (h *Handler) GetForumRSS(c *gin.Context) {
	name := c.Param("name")
	view, ok := h.registry.Get(name)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	state := view.Snapshot()
	if state.Status != forum.StatusReady {
		c.Status(statusCode(state.Status))
		return
	}

	items := view.Items()
	channel := forum.Channel{
		Name:     name,
		Title:    view.Config().Title,
		Link:     fmt.Sprintf("%s/forums/%s", baseURL(c), name),
		SelfLink: fmt.Sprintf("%s/forums/%s/rss", baseURL(c), name),
		Timezone: view.Formatter().Location().String(),
	}

	rss, err := h.generator.Run(channel, items, view.Formatter())
	if err != nil {
		slog.Error("RSS generation error", "forum", name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(items)))
	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	views := h.registry.All()

	forums := lo.Map(views, func(view *forum.View, _ int) gin.H {
		return gin.H{
			"name":   view.Name(),
			"title":  view.Config().Title,
			"status": view.Snapshot().Status.String(),
		}
	})

	ready := lo.CountBy(views, func(view *forum.View) bool {
		return view.Snapshot().Status == forum.StatusReady
	})

	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   h.version,
		"forums":    forums,
		"total":     len(views),
		"ready":     ready,
	})
}

func (h *Handler) postCount(n int) string {
	p := message.NewPrinter(h.locale)
	if n == 1 {
		return p.Sprintf("%d post", n)
	}
	return p.Sprintf("%d posts", n)
}

func statusCode(status forum.Status) int {
	switch status {
	case forum.StatusLoading:
		return http.StatusAccepted
	case forum.StatusError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}
