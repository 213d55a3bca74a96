package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crowdsage/crowdsage/domain"
	"github.com/crowdsage/crowdsage/internal/rest/request"
)

type UserHandler struct {
	Service domain.UserUsecase
}

func NewUserHandler(svc domain.UserUsecase) *UserHandler {
	return &UserHandler{
		Service: svc,
	}
}

// Register creates a new user account
func (h *UserHandler) Register(c *gin.Context) {
	var req request.Register
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: bindErrorMessage(err)})
		return
	}

	if err := h.Service.Register(c.Request.Context(), req.UserName, req.Email, req.Password); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.Status(http.StatusCreated)
}

// Login verifies credentials and returns a bearer token
func (h *UserHandler) Login(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: bindErrorMessage(err)})
		return
	}

	token, err := h.Service.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		// Do not leak whether the username or the password was wrong.
		c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
