package response

import (
	"time"

	"github.com/crowdsage/crowdsage/domain"
)

const DateTimeFormat = time.RFC3339

type Author struct {
	ID       string  `json:"id"`
	UserName string  `json:"userName"`
	URLPhoto *string `json:"urlPhoto"`
}

// NewAuthorFromDomain: Domain -> Response
func NewAuthorFromDomain(a domain.Author) Author {
	return Author{
		ID:       a.ID,
		UserName: a.UserName,
		URLPhoto: a.URLPhoto,
	}
}
