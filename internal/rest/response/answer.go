package response

import (
	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/markdown"
)

type Answer struct {
	ID              string `json:"id"`
	QuestionID      string `json:"questionId"`
	Content         string `json:"content"`
	ContentHTML     string `json:"contentHtml"`
	Votes           int64  `json:"votes"`
	CurrentUserVote string `json:"currentUserVote"`
	Bookmarked      bool   `json:"bookmarked"`
	Author          Author `json:"author"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// NewAnswerFromDomain: Domain -> Response
func NewAnswerFromDomain(a *domain.Answer) Answer {
	return Answer{
		ID:              a.ID,
		QuestionID:      a.QuestionID,
		Content:         a.Content,
		ContentHTML:     markdown.Render(a.Content),
		Votes:           a.Votes,
		CurrentUserVote: a.ViewerVote.String(),
		Bookmarked:      a.Bookmarked,
		Author:          NewAuthorFromDomain(a.Author),
		CreatedAt:       a.CreatedAt.Format(DateTimeFormat),
		UpdatedAt:       a.UpdatedAt.Format(DateTimeFormat),
	}
}
