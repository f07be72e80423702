package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-calendar-api/internal/model"
)

type typeRequest struct {
	Name            string  `json:"nome_tipo" binding:"required"`
	Description     *string `json:"descrizione"`
	DurationMinutes int     `json:"durata_minuti" binding:"omitempty,min=1"`
	Color           *string `json:"colore"`
}

func (h *Handler) CreateType(c *gin.Context) {
	var req typeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "nome_tipo is required")
		return
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = 30
	}

	t := &model.AppointmentType{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Color:           req.Color,
	}
	if err := h.store.CreateType(c.Request.Context(), t); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) GetType(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	t, err := h.store.GetType(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) ListTypes(c *gin.Context) {
	types, err := h.store.ListTypes(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(types), "tipi": types})
}

func (h *Handler) UpdateType(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req typeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "nome_tipo is required")
		return
	}

	t, err := h.store.GetType(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	t.Name = req.Name
	t.Description = req.Description
	if req.DurationMinutes != 0 {
		t.DurationMinutes = req.DurationMinutes
	}
	t.Color = req.Color

	if err := h.store.UpdateType(c.Request.Context(), t); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
