package handler

import (
	"log/slog"
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genres *service.GenreService
	logger *slog.Logger
}

func NewGenreHandler(genres *service.GenreService, logger *slog.Logger) *GenreHandler {
	return &GenreHandler{genres: genres, logger: logger}
}

func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	resp, err := h.genres.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GenreHandler) Get(c *gin.Context) {
	resp, err := h.genres.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.genres.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genres.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
