package handler

import (
	"log/slog"
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// SignUp answers 200 for both a fresh registration and a code re-issue,
// so the endpoint stays idempotent for the same username/email pair.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.auth.IssueToken(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
