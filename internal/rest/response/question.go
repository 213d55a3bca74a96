package response

import (
	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/markdown"
)

type Question struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	ContentHTML     string `json:"contentHtml"`
	Votes           int64  `json:"votes"`
	CurrentUserVote string `json:"currentUserVote"`
	Bookmarked      bool   `json:"bookmarked"`
	Author          Author `json:"author"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// NewQuestionFromDomain: Domain -> Response
func NewQuestionFromDomain(q *domain.Question) Question {
	return Question{
		ID:              q.ID,
		Title:           q.Title,
		Content:         q.Content,
		ContentHTML:     markdown.Render(q.Content),
		Votes:           q.Votes,
		CurrentUserVote: q.ViewerVote.String(),
		Bookmarked:      q.Bookmarked,
		Author:          NewAuthorFromDomain(q.Author),
		CreatedAt:       q.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:       q.UpdatedAt.Format(DateTimeFormat),
	}
}
