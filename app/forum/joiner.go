package forum

import (
	"github.com/samber/lo"
)

// Join pairs every post with its author, keeping post order. Authors are
// indexed first; on duplicate ids the earliest author wins.
func Join(posts []Post, authors []Author) []FeedItem {
	authorID := func(a Author) int { return a.ID }
	index := lo.KeyBy(lo.UniqBy(authors, authorID), authorID)

	return lo.Map(posts, func(post Post, _ int) FeedItem {
		item := FeedItem{Post: post}
		if author, ok := index[post.AuthorID]; ok {
			item.Author = &author
		}
		return item
	})
}

func (i FeedItem) AuthorName() string {
	if i.Author == nil {
		return ""
	}
	return i.Author.Name
}

func (i FeedItem) AuthorAvatarURL() string {
	if i.Author == nil {
		return ""
	}
	return i.Author.AvatarURL
}
