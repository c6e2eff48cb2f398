package handler

import (
	"log/slog"
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews *service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(reviews *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := idParam(c, "title_id")
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	resp, err := h.reviews.ListByTitle(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := idParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := idParam(c, "review_id")
	if !ok {
		return
	}

	resp, err := h.reviews.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := idParam(c, "title_id")
	if !ok {
		return
	}

	var req dto.ReviewWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.reviews.Create(c.Request.Context(), titleID, middleware.CurrentUser(c), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := idParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := idParam(c, "review_id")
	if !ok {
		return
	}

	var req dto.ReviewWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.reviews.Update(c.Request.Context(), titleID, reviewID, middleware.CurrentUser(c), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := idParam(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := idParam(c, "review_id")
	if !ok {
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), titleID, reviewID, middleware.CurrentUser(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
