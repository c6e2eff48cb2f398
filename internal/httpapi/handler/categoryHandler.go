package handler

import (
	"log/slog"
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories *service.CategoryService
	logger     *slog.Logger
}

func NewCategoryHandler(categories *service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, logger: logger}
}

func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	resp, err := h.categories.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	resp, err := h.categories.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
