package service

import (
	"inkwell/internal/imaging"
	"inkwell/internal/models"
)

// fallbackDisplayName is used when a commenter's user record cannot be
// resolved; the read degrades instead of erroring.
const fallbackDisplayName = "unknown user"

// decoratePost fills the computed read-time fields of a post: the inline
// image representation and resolved commenter display names.
func decoratePost(p *models.Post) *models.Post {
	p.Image = imaging.DataURI(p.ImageContentType, p.ImageData)
	for i := range p.Comments {
		p.Comments[i].Username = displayName(&p.Comments[i].User)
	}
	return p
}

func decoratePosts(posts []*models.Post) []*models.Post {
	for _, p := range posts {
		decoratePost(p)
	}
	return posts
}

func decorateComments(comments []*models.Comment) []*models.Comment {
	for _, c := range comments {
		c.Username = displayName(&c.User)
	}
	return comments
}

func decorateUser(u *models.User) *models.User {
	u.Image = imaging.DataURI(u.ImageContentType, u.ImageData)
	return u
}

func displayName(u *models.User) string {
	if u == nil || u.Username == "" {
		return fallbackDisplayName
	}
	return u.Username
}
