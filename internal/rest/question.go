package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/rest/request"
	"github.com/crowdsage/crowdsage/internal/rest/response"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const (
	DefaultPageNum = 10
	PageMinNum     = 1
	PageMaxNum     = 50
)

// QuestionHandler represent the httphandler for questions
type QuestionHandler struct {
	Service domain.QuestionUsecase
}

func NewQuestionHandler(svc domain.QuestionUsecase) *QuestionHandler {
	return &QuestionHandler{
		Service: svc,
	}
}

// viewerID returns the authenticated user's ID, empty for anonymous viewers.
func viewerID(c *gin.Context) string {
	return c.GetString("user_id")
}

// pageParams reads take/page query params, clamping into sane bounds.
func pageParams(c *gin.Context) (take, offset int) {
	take, err := strconv.Atoi(c.DefaultQuery("take", strconv.Itoa(DefaultPageNum)))
	if err != nil || take < PageMinNum || take > PageMaxNum {
		take = DefaultPageNum
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return take, (page - 1) * take
}

// FetchNew will fetch a page of questions ordered by creation time, newest
// first, merged with the viewer's vote and bookmark state.
func (h *QuestionHandler) FetchNew(c *gin.Context) {
	take, offset := pageParams(c)

	questions, err := h.Service.FetchNew(c.Request.Context(), viewerID(c), take, offset)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Question, len(questions))
	for i := range questions {
		res[i] = response.NewQuestionFromDomain(&questions[i])
	}
	c.JSON(http.StatusOK, res)
}

// GetByID will get a question by given id
func (h *QuestionHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	q, err := h.Service.GetByID(c.Request.Context(), id, viewerID(c))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewQuestionFromDomain(&q))
}

// Store will store the question by given request body
func (h *QuestionHandler) Store(c *gin.Context) {
	var req request.Question
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: bindErrorMessage(err)})
		return
	}

	question := req.ToDomain()
	question.AuthorID = viewerID(c)

	if err := h.Service.Store(c.Request.Context(), &question); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewQuestionFromDomain(&question))
}

// Edit will update title and content of an existing question
func (h *QuestionHandler) Edit(c *gin.Context) {
	var req request.Question
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: bindErrorMessage(err)})
		return
	}

	if err := h.Service.Edit(c.Request.Context(), c.Param("id"), req.Title, req.Content); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete will delete the question by given param
func (h *QuestionHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// Vote records the viewer's vote on a question
func (h *QuestionHandler) Vote(c *gin.Context) {
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

// Bookmark saves the question for the viewer
func (h *QuestionHandler) Bookmark(c *gin.Context) {
	if err := h.Service.Bookmark(c.Request.Context(), c.Param("id"), viewerID(c)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

// RemoveBookmark deletes one bookmark row of the viewer
func (h *QuestionHandler) RemoveBookmark(c *gin.Context) {
	if err := h.Service.RemoveBookmark(c.Request.Context(), c.Param("id"), viewerID(c)); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// FetchBookmarked lists the viewer's bookmarked questions
func (h *QuestionHandler) FetchBookmarked(c *gin.Context) {
	take, offset := pageParams(c)

	questions, err := h.Service.FetchBookmarked(c.Request.Context(), viewerID(c), take, offset)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Question, len(questions))
	for i := range questions {
		res[i] = response.NewQuestionFromDomain(&questions[i])
	}
	c.JSON(http.StatusOK, res)
}

// bindErrorMessage turns gin binding failures into a readable message.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("field '%s' failed on the '%s' rule", fe.Field(), fe.Tag())
	}
	return err.Error()
}

// getStatusCode will get the http status code of a domain error
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	logrus.Error(err)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
