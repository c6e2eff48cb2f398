package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titles *service.TitleService
	logger *slog.Logger
}

func NewTitleHandler(titles *service.TitleService, logger *slog.Logger) *TitleHandler {
	return &TitleHandler{titles: titles, logger: logger}
}

func (h *TitleHandler) List(c *gin.Context) {
	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if raw := c.Query("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			filter.Year = &year
		}
	}

	page, pageSize := pageParams(c)
	resp, err := h.titles.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "title_id")
	if !ok {
		return
	}

	resp, err := h.titles.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.TitleWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.titles.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "title_id")
	if !ok {
		return
	}

	var req dto.TitleWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c)
		return
	}

	resp, err := h.titles.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "title_id")
	if !ok {
		return
	}

	if err := h.titles.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
