package handler

import (
	"log/slog"
	"net/http"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the admin user CRUD and the /users/me profile.
// The "me" segment is dispatched here rather than as a separate route:
// a static sibling of the :username parameter would not register.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	resp, err := h.users.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UserHandler) Get(c *gin.Context) {
	username := c.Param("username")
	if username == "me" {
		resp := dto.FromModelToUserResponse(middleware.CurrentUser(c))
		c.JSON(http.StatusOK, resp)
		return
	}

	if !h.requireAdmin(c) {
		return
	}

	resp, err := h.users.Get(c.Request.Context(), username)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Update(c *gin.Context) {
	username := c.Param("username")
	allowRole := true
	if username == "me" {
		// any authenticated user may edit their own profile, but the
		// role field stays read-only on this path
		username = middleware.CurrentUser(c).Username
		allowRole = false
	} else if !h.requireAdmin(c) {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.users.Update(c.Request.Context(), username, req, allowRole)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Delete(c *gin.Context) {
	username := c.Param("username")
	if username == "me" {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "method not allowed"})
		return
	}

	if !h.requireAdmin(c) {
		return
	}

	if err := h.users.Delete(c.Request.Context(), username); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) requireAdmin(c *gin.Context) bool {
	user := middleware.CurrentUser(c)
	if user == nil || !user.Role.IsAdmin() {
		writeError(c, h.logger, apierrors.ErrForbidden)
		return false
	}
	return true
}
