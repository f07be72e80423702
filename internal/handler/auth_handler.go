package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booking-calendar-api/internal/auth"
)

type tokenRequest struct {
	Password string `json:"password" binding:"required"`
}

// Token exchanges the operator password for a bearer token.
func (h *Handler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "password required")
		return
	}

	if !auth.CheckPassword(h.passwordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	tok, err := auth.MakeToken("operator", h.secret, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok, "expires_in": int(h.tokenTTL.Seconds())})
}
