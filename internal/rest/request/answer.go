package request

import "github.com/crowdsage/crowdsage/domain"

type Answer struct {
	Content string `json:"content" binding:"required"`
}

// ToDomain: Request -> Domain
func (r *Answer) ToDomain() domain.Answer {
	return domain.Answer{
		Content: r.Content,
	}
}
