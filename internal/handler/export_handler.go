package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-calendar-api/internal/export"
)

// ExportAppointments streams the filtered range as an xlsx workbook.
func (h *Handler) ExportAppointments(c *gin.Context) {
	f, ok := h.listFilter(c)
	if !ok {
		return
	}
	items, err := h.store.ListAppointments(c.Request.Context(), f)
	if err != nil {
		h.storeError(c, err)
		return
	}

	wb, err := export.AppointmentsWorkbook(items)
	if err != nil {
		h.logger.Error("export failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	defer wb.Close()

	filename := fmt.Sprintf("appuntamenti_%s.xlsx", f.DateFrom)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := wb.Write(c.Writer); err != nil {
		h.logger.Error("export write failed", "err", err)
	}
}
