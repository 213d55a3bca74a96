package request

import "github.com/crowdsage/crowdsage/domain"

type Question struct {
	Title   string `json:"title" binding:"required,max=256"`
	Content string `json:"content" binding:"required"`
}

// ToDomain: Request -> Domain
func (r *Question) ToDomain() domain.Question {
	return domain.Question{
		Title:   r.Title,
		Content: r.Content,
	}
}
