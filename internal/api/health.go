package api

import (
	"net/http"
	"time"

	"github.com/alexanderramin/plangrid/internal/store"
	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Planning  string    `json:"planning,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	store       *store.Store
}

func NewHealthHandler(serviceName, version string, s *store.Store) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, store: s}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
	}
	if h.store != nil {
		resp.Planning = h.store.ActivePlanningID()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
