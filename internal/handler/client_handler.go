package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-calendar-api/internal/model"
	"booking-calendar-api/internal/store"
)

type clientRequest struct {
	FirstName      string  `json:"nome" binding:"required"`
	LastName       string  `json:"cognome" binding:"required"`
	Phone          string  `json:"telefono" binding:"required"`
	Email          *string `json:"email" binding:"omitempty,email"`
	SecondaryPhone *string `json:"telefono_secondario"`
	Street         *string `json:"via"`
	StreetNumber   *string `json:"numero_civico"`
	City           *string `json:"citta"`
	PostalCode     *string `json:"cap"`
	Province       *string `json:"provincia"`
	Notes          *string `json:"note"`
	Active         *bool   `json:"attivo"`
}

func (r *clientRequest) apply(c *model.Client) {
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.Phone = r.Phone
	c.Email = r.Email
	c.SecondaryPhone = r.SecondaryPhone
	c.Street = r.Street
	c.StreetNumber = r.StreetNumber
	c.City = r.City
	c.PostalCode = r.PostalCode
	c.Province = r.Province
	c.Notes = r.Notes
	if r.Active != nil {
		c.Active = *r.Active
	}
}

func (h *Handler) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "nome, cognome and telefono are required")
		return
	}

	cl := &model.Client{}
	req.apply(cl)
	if err := h.store.CreateClient(c.Request.Context(), cl); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (h *Handler) GetClient(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	cl, err := h.store.GetClient(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

// SearchClients filters by free text, city and active flag. With no
// parameters it lists active clients.
func (h *Handler) SearchClients(c *gin.Context) {
	f := store.ClientFilter{
		Query: c.Query("q"),
		City:  c.Query("citta"),
	}
	switch c.DefaultQuery("attivo", "true") {
	case "true":
		t := true
		f.Active = &t
	case "false":
		fa := false
		f.Active = &fa
	case "all":
	default:
		badRequest(c, "attivo must be true, false or all")
		return
	}

	clients, err := h.store.SearchClients(c.Request.Context(), f)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(clients), "clienti": clients})
}

func (h *Handler) UpdateClient(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "nome, cognome and telefono are required")
		return
	}

	cl, err := h.store.GetClient(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	req.apply(cl)
	if err := h.store.UpdateClient(c.Request.Context(), cl); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

// DeactivateClient is the registry's delete: the row survives with
// attivo=false so appointment history keeps resolving.
func (h *Handler) DeactivateClient(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		return
	}
	if err := h.store.DeactivateClient(c.Request.Context(), id); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id_cliente": id, "attivo": false})
}
