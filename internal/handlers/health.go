package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/huangang/teamboard/internal/services"
	"github.com/huangang/teamboard/internal/state"
	"gorm.io/gorm"
)

// HealthHandler reports the state of each subsystem.
type HealthHandler struct {
	db      *gorm.DB
	hub     *services.ChangeHub
	session *state.Session
}

func NewHealthHandler(db *gorm.DB, hub *services.ChangeHub, session *state.Session) *HealthHandler {
	return &HealthHandler{db: db, hub: hub, session: session}
}

// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"
	status := http.StatusOK

	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = "error: " + err.Error()
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = "error: " + err.Error()
	}
	if dbStatus != "ok" {
		overall = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	st := h.session.State()
	c.JSON(status, gin.H{
		"status":  overall,
		"service": "teamboard",
		"components": gin.H{
			"database":      dbStatus,
			"signed_in":     st.Auth.User != nil,
			"impersonating": st.Auth.Impersonating(),
			"event_clients": h.hub.ClientCount(),
		},
	})
}
