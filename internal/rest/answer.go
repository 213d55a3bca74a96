package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/rest/request"
	"github.com/crowdsage/crowdsage/internal/rest/response"
)

// AnswerHandler represent the httphandler for answers
type AnswerHandler struct {
	Service domain.AnswerUsecase
}

func NewAnswerHandler(svc domain.AnswerUsecase) *AnswerHandler {
	return &AnswerHandler{
		Service: svc,
	}
}

// Store creates an answer under the question given in the path
func (h *AnswerHandler) Store(c *gin.Context) {
	var req request.Answer
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: bindErrorMessage(err)})
		return
	}

	answer := req.ToDomain()
	answer.QuestionID = c.Param("id")
	answer.AuthorID = viewerID(c)

	if err := h.Service.Store(c.Request.Context(), &answer); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewAnswerFromDomain(&answer))
}

// FetchByQuestion lists all answers of a question
func (h *AnswerHandler) FetchByQuestion(c *gin.Context) {
	answers, err := h.Service.FetchByQuestion(c.Request.Context(), c.Param("id"), viewerID(c))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Answer, len(answers))
	for i := range answers {
		res[i] = response.NewAnswerFromDomain(&answers[i])
	}
	c.JSON(http.StatusOK, res)
}

// GetByID will get an answer by given id
func (h *AnswerHandler) GetByID(c *gin.Context) {
	a, err := h.Service.GetByID(c.Request.Context(), c.Param("id"), viewerID(c))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewAnswerFromDomain(&a))
}

// Edit updates the content of an existing answer
func (h *AnswerHandler) Edit(c *gin.Context) {
	var req request.Answer
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: bindErrorMessage(err)})
		return
	}

	if err := h.Service.Edit(c.Request.Context(), c.Param("id"), req.Content); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes the answer and its votes, bookmarks and comments
func (h *AnswerHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// Vote records the viewer's vote on an answer
func (h *AnswerHandler) Vote(c *gin.Context) {
	var req request.Vote
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: bindErrorMessage(err)})
		return
	}
	value, err := domain.ParseVoteValue(req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	if err := h.Service.Vote(c.Request.Context(), c.Param("id"), viewerID(c), value); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

// Bookmark saves the answer for the viewer
func (h *AnswerHandler) Bookmark(c *gin.Context) {
	if err := h.Service.Bookmark(c.Request.Context(), c.Param("id"), viewerID(c)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

// RemoveBookmark deletes one bookmark row of the viewer
func (h *AnswerHandler) RemoveBookmark(c *gin.Context) {
	if err := h.Service.RemoveBookmark(c.Request.Context(), c.Param("id"), viewerID(c)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// FetchBookmarked lists the viewer's bookmarked answers
func (h *AnswerHandler) FetchBookmarked(c *gin.Context) {
	take, offset := pageParams(c)

	answers, err := h.Service.FetchBookmarked(c.Request.Context(), viewerID(c), take, offset)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Answer, len(answers))
	for i := range answers {
		res[i] = response.NewAnswerFromDomain(&answers[i])
	}
	c.JSON(http.StatusOK, res)
}
