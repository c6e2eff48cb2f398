package handler

import (
	"log/slog"
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *service.CommentService
	logger   *slog.Logger
}

func NewCommentHandler(comments *service.CommentService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: logger}
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	resp, err := h.comments.ListByReview(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		return
	}

	resp, err := h.comments.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}

	var req dto.CommentWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.comments.Create(c.Request.Context(), titleID, reviewID, middleware.CurrentUser(c), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		return
	}

	var req dto.CommentWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.comments.Update(c.Request.Context(), titleID, reviewID, commentID, middleware.CurrentUser(c), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		return
	}

	err := h.comments.Delete(c.Request.Context(), titleID, reviewID, commentID, middleware.CurrentUser(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func commentPath(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = idParam(c, "title_id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = idParam(c, "review_id")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}
