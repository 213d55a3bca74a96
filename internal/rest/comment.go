package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/rest/request"
	"github.com/crowdsage/crowdsage/internal/rest/response"
)

// commentHandler serves one comment thread variant; it is mounted once for
// question comments and once for answer comments.
type commentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *commentHandler {
	return &commentHandler{
		Service: svc,
	}
}

// Create adds a comment under the parent given in the path
func (h *commentHandler) Create(c *gin.Context) {
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: bindErrorMessage(err)})
		return
	}

	comment, err := h.Service.Add(c.Request.Context(), c.Param("id"), viewerID(c), req.Content)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response.NewCommentFromDomain(&comment))
}

// FetchByParent lists all comments of the parent given in the path
func (h *commentHandler) FetchByParent(c *gin.Context) {
	comments, err := h.Service.FetchByParent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Comment, len(comments))
	for i := range comments {
		res[i] = response.NewCommentFromDomain(&comments[i])
	}
	c.JSON(http.StatusOK, res)
}

// GetByID will get a comment by given id
func (h *commentHandler) GetByID(c *gin.Context) {
	comment, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewCommentFromDomain(&comment))
}

// Edit updates the content of an existing comment
func (h *commentHandler) Edit(c *gin.Context) {
	var req request.Comment
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

// Delete removes the comment
func (h *commentHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
