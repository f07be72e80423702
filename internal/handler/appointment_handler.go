package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"booking-calendar-api/internal/model"
	"booking-calendar-api/internal/store"
)

type createAppointmentRequest struct {
	ClientID        int64   `json:"id_cliente" binding:"required"`
	TypeID          *int64  `json:"id_tipo"`
	Date            string  `json:"data_appuntamento" binding:"required"`
	StartTime       string  `json:"ora_inizio" binding:"required"`
	EndTime         string  `json:"ora_fine"`
	DurationMinutes int     `json:"durata_minuti" binding:"omitempty,min=1"`
	Title           string  `json:"titolo" binding:"required"`
	Description     *string `json:"descrizione"`
	Location        *string `json:"luogo"`
	Notes           *string `json:"note"`
	Urgent          bool    `json:"urgente"`
}

// CreateAppointment books a slot. The end time comes from ora_fine when
// given, otherwise from durata_minuti, the type's standard duration, or 30
// minutes, in that order. The overlap check is a courtesy query before the
// insert, not a schema constraint.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "id_cliente, data_appuntamento, ora_inizio and titolo are required")
		return
	}

	if err := model.ParseDate(req.Date); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := model.ParseClock(req.StartTime); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()

	end := req.EndTime
	if end != "" {
		if err := model.ParseClock(end); err != nil {
			badRequest(c, err.Error())
			return
		}
	} else {
		minutes := req.DurationMinutes
		if minutes == 0 && req.TypeID != nil {
			t, err := h.store.GetType(ctx, *req.TypeID)
			if err != nil {
				// a dangling id_tipo is a reference error here, same as
				// the FK would report if ora_fine had been supplied
				if errors.Is(err, store.ErrNotFound) {
					err = fmt.Errorf("%w: id_tipo %d", store.ErrReference, *req.TypeID)
				}
				h.storeError(c, err)
				return
			}
			minutes = t.DurationMinutes
		}
		if minutes == 0 {
			minutes = 30
		}
		var err error
		if end, err = model.AddMinutes(req.StartTime, minutes); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	if !model.ClockAfter(end, req.StartTime) {
		badRequest(c, "ora_fine must be after ora_inizio")
		return
	}

	if conflict, title, err := h.store.HasOverlap(ctx, req.Date, req.StartTime, end, 0); err != nil {
		h.storeError(c, err)
		return
	} else if conflict {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("slot conflicts with existing appointment %q", title)})
		return
	}

	a := &model.Appointment{
		ClientID:    req.ClientID,
		TypeID:      req.TypeID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     end,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Notes:       req.Notes,
		Urgent:      req.Urgent,
	}
	if err := h.store.CreateAppointment(ctx, a); err != nil {
		h.storeError(c, err)
		return
	}

	h.appendHistory(c, a.ID, model.ChangeCreated, "Appuntamento creato")
	h.cache.InvalidateDay(ctx, a.Date)

	detail, err := h.store.GetAppointment(ctx, a.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	detail, err := h.store.GetAppointment(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListAppointments filters by date range (from today when unspecified),
// status, urgency and client. No matches is an empty list, not an error.
func (h *Handler) ListAppointments(c *gin.Context) {
	f, ok := h.listFilter(c)
	if !ok {
		return
	}
	items, err := h.store.ListAppointments(c.Request.Context(), f)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "appuntamenti": items})
}

func (h *Handler) listFilter(c *gin.Context) (store.AppointmentFilter, bool) {
	f := store.AppointmentFilter{
		DateFrom: c.DefaultQuery("data_da", model.Today()),
		DateTo:   c.Query("data_a"),
	}
	if err := model.ParseDate(f.DateFrom); err != nil {
		badRequest(c, err.Error())
		return f, false
	}
	if f.DateTo != "" {
		if err := model.ParseDate(f.DateTo); err != nil {
			badRequest(c, err.Error())
			return f, false
		}
	}
	if raw := c.Query("stato"); raw != "" {
		st, err := model.ParseStatus(raw)
		if err != nil {
			badRequest(c, err.Error())
			return f, false
		}
		f.Status = st
	}
	if raw := c.Query("urgente"); raw != "" {
		u, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "urgente must be true or false")
			return f, false
		}
		f.Urgent = &u
	}
	if raw := c.Query("id_cliente"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			badRequest(c, "invalid id_cliente")
			return f, false
		}
		f.ClientID = id
	}
	return f, true
}

func (h *Handler) SearchAppointments(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		badRequest(c, "q is required")
		return
	}
	items, err := h.store.SearchAppointments(c.Request.Context(), q)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"query": q, "count": len(items), "risultati": items})
}

type updateAppointmentRequest struct {
	TypeID          *int64  `json:"id_tipo"`
	Date            *string `json:"data_appuntamento"`
	StartTime       *string `json:"ora_inizio"`
	EndTime         *string `json:"ora_fine"`
	DurationMinutes *int    `json:"durata_minuti"`
	Title           *string `json:"titolo"`
	Description     *string `json:"descrizione"`
	Location        *string `json:"luogo"`
	Notes           *string `json:"note"`
	Urgent          *bool   `json:"urgente"`
	Status          *string `json:"stato"`
}

// UpdateAppointment applies a partial update in place. When the start moves
// without an explicit end or duration, the previous duration is kept. Every
// applied change is described in a single storico entry.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	existing, err := h.store.GetAppointment(ctx, id)
	if err != nil {
		h.storeError(c, err)
		return
	}

	a := existing.Appointment
	prevDate := a.Date
	var changes []string

	if req.Date != nil {
		if err := model.ParseDate(*req.Date); err != nil {
			badRequest(c, err.Error())
			return
		}
		a.Date = *req.Date
		changes = append(changes, "Data modificata in "+a.Date)
	}
	if req.StartTime != nil {
		if err := model.ParseClock(*req.StartTime); err != nil {
			badRequest(c, err.Error())
			return
		}
		// carry the old duration unless the caller pins the end
		minutes, err := model.ClockMinutes(a.StartTime, a.EndTime)
		if err != nil {
			h.storeError(c, err)
			return
		}
		if req.DurationMinutes != nil {
			minutes = *req.DurationMinutes
		}
		a.StartTime = *req.StartTime
		if req.EndTime == nil {
			if a.EndTime, err = model.AddMinutes(a.StartTime, minutes); err != nil {
				badRequest(c, err.Error())
				return
			}
		}
		changes = append(changes, fmt.Sprintf("Orario modificato: %s - %s", a.StartTime, a.EndTime))
	}
	if req.EndTime != nil {
		if err := model.ParseClock(*req.EndTime); err != nil {
			badRequest(c, err.Error())
			return
		}
		a.EndTime = *req.EndTime
		changes = append(changes, "Ora fine modificata in "+a.EndTime)
	}
	if req.TypeID != nil {
		a.TypeID = req.TypeID
		changes = append(changes, "Tipo modificato")
	}
	if req.Title != nil {
		a.Title = *req.Title
		changes = append(changes, "Titolo modificato")
	}
	if req.Description != nil {
		a.Description = req.Description
		changes = append(changes, "Descrizione aggiornata")
	}
	if req.Location != nil {
		a.Location = req.Location
		changes = append(changes, "Luogo modificato")
	}
	if req.Notes != nil {
		a.Notes = req.Notes
	}
	if req.Urgent != nil {
		a.Urgent = *req.Urgent
		changes = append(changes, fmt.Sprintf("Urgenza: %t", a.Urgent))
	}
	if req.Status != nil {
		st, err := model.ParseStatus(*req.Status)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		a.Status = st
		changes = append(changes, "Stato cambiato in "+st.String())
	}

	if len(changes) == 0 && req.Notes == nil {
		badRequest(c, "no changes specified")
		return
	}
	if !model.ClockAfter(a.EndTime, a.StartTime) {
		badRequest(c, "ora_fine must be after ora_inizio")
		return
	}

	if req.Date != nil || req.StartTime != nil || req.EndTime != nil {
		if conflict, title, err := h.store.HasOverlap(ctx, a.Date, a.StartTime, a.EndTime, a.ID); err != nil {
			h.storeError(c, err)
			return
		} else if conflict {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("slot conflicts with existing appointment %q", title)})
			return
		}
	}

	if err := h.store.UpdateAppointment(ctx, &a); err != nil {
		h.storeError(c, err)
		return
	}

	kind := model.ChangeUpdated
	if req.Status != nil && a.Status == model.StatusCancelled {
		kind = model.ChangeCancelled
	}
	h.appendHistory(c, a.ID, kind, strings.Join(changes, "; "))
	h.cache.InvalidateDay(ctx, prevDate)
	h.cache.InvalidateDay(ctx, a.Date)

	detail, err := h.store.GetAppointment(ctx, a.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CompleteAppointment is the shorthand status transition the tool surface
// promises.
func (h *Handler) CompleteAppointment(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	ctx := c.Request.Context()

	if err := h.store.SetStatus(ctx, id, model.StatusCompleted); err != nil {
		h.storeError(c, err)
		return
	}
	h.appendHistory(c, id, model.ChangeCompleted, "Appuntamento completato")

	detail, err := h.store.GetAppointment(ctx, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	h.cache.InvalidateDay(ctx, detail.Date)
	c.JSON(http.StatusOK, detail)
}

// DeleteAppointment removes the row outright. Whether the change history
// goes with it is the cascade_history configuration choice; with cascading
// off, a row that still has history fails with a reference error.
func (h *Handler) DeleteAppointment(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	ctx := c.Request.Context()

	existing, err := h.store.GetAppointment(ctx, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if err := h.store.DeleteAppointment(ctx, id, h.cascadeHistory); err != nil {
		h.storeError(c, err)
		return
	}
	h.cache.InvalidateDay(ctx, existing.Date)
	c.JSON(http.StatusOK, gin.H{"deleted": existing.Appointment})
}

// MarkReminder flags the reminder as sent. Delivery itself is out of scope;
// only the flag exists.
func (h *Handler) MarkReminder(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	ctx := c.Request.Context()

	if err := h.store.MarkReminderSent(ctx, id); err != nil {
		h.storeError(c, err)
		return
	}
	h.appendHistory(c, id, model.ChangeReminder, "Promemoria inviato")

	detail, err := h.store.GetAppointment(ctx, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	h.cache.InvalidateDay(ctx, detail.Date)
	c.JSON(http.StatusOK, detail)
}

// History returns the audit trail, newest first.
func (h *Handler) History(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	ctx := c.Request.Context()

	if _, err := h.store.GetAppointment(ctx, id); err != nil {
		h.storeError(c, err)
		return
	}
	entries, err := h.store.ListHistory(ctx, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id_appuntamento": id, "count": len(entries), "storico": entries})
}

// DailySchedule returns the full program of one day with per-day counters,
// cancelled appointments excluded.
func (h *Handler) DailySchedule(c *gin.Context) {
	date := c.Param("date")
	if err := model.ParseDate(date); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	items, hit := h.cache.GetDay(ctx, date)
	if !hit {
		var err error
		if items, err = h.store.DailySchedule(ctx, date); err != nil {
			h.storeError(c, err)
			return
		}
		h.cache.SetDay(ctx, date, items)
	}

	urgent, confirmed, completed := 0, 0, 0
	for _, a := range items {
		if a.Urgent {
			urgent++
		}
		switch a.Status {
		case model.StatusConfirmed:
			confirmed++
		case model.StatusCompleted:
			completed++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   date,
		"totale": len(items),
		"statistiche": gin.H{
			"urgenti":    urgent,
			"confermati": confirmed,
			"completati": completed,
		},
		"appuntamenti": items,
	})
}

// appendHistory records the conventional audit entry after a mutation. The
// ledger does not fail the request over it; the write already happened.
func (h *Handler) appendHistory(c *gin.Context, appointmentID int64, kind, description string) {
	e := &model.ChangeEntry{
		AppointmentID: appointmentID,
		Kind:          kind,
		Description:   &description,
	}
	if err := h.store.AppendHistory(c.Request.Context(), e); err != nil {
		h.logger.Warn("history append failed", "appointment", appointmentID, "kind", kind, "err", err)
	}
}
