package response

import (
	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/markdown"
)

type Comment struct {
	ID          string  `json:"id"`
	ParentID    string  `json:"parentId"`
	Content     string  `json:"content"`
	ContentHTML string  `json:"contentHtml"`
	Author      *Author `json:"author,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// NewCommentFromDomain: Domain -> Response
func NewCommentFromDomain(c *domain.Comment) Comment {
	res := Comment{
		ID:          c.ID,
		ParentID:    c.ParentID,
		Content:     c.Content,
		ContentHTML: markdown.Render(c.Content),
		CreatedAt:   c.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:   c.UpdatedAt.Format(DateTimeFormat),
	}
	if c.Author != nil {
		author := NewAuthorFromDomain(*c.Author)
		res.Author = &author
	}
	return res
}
