// Package api serves the plangrid store as a JSON HTTP API.
package api

import (
	"log/slog"
	"slices"
	"time"

	"github.com/alexanderramin/plangrid/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Store       *store.Store
	Logger      *slog.Logger
	// CORSOrigins lists allowed origins; "*" allows any.
	CORSOrigins []string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	logger := dep.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(RequestID(logger))
	if len(dep.CORSOrigins) > 0 {
		r.Use(corsMiddleware(dep.CORSOrigins))
	}

	NewHealthHandler(dep.ServiceName, dep.Version, dep.Store).RegisterRoutes(r)

	api := r.Group("/api/v1")
	NewHandler(dep.Store).Register(api)

	return r
}

// Register attaches every store route to rg.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/timeline", h.getTimeline)
	rg.PATCH("/timeline", h.patchTimeline)
	rg.GET("/cells", h.listCells)
	rg.GET("/cards", h.listCards)
	rg.GET("/cards/:index/projects", h.cardProjects)

	projects := rg.Group("/projects")
	projects.GET("", h.listProjects)
	projects.POST("", h.createProject)
	projects.GET("/:id", h.getProject)
	projects.PATCH("/:id", h.updateProject)
	projects.POST("/:id/move", h.moveProject)
	projects.POST("/:id/resize", h.resizeProject)
	projects.DELETE("/:id", h.deleteProject)

	groups := rg.Group("/groups")
	groups.GET("", h.listGroups)
	groups.POST("", h.createGroup)
	groups.PATCH("/:id", h.updateGroup)
	groups.DELETE("/:id", h.deleteGroup)

	plannings := rg.Group("/plannings")
	plannings.GET("", h.listPlannings)
	plannings.POST("", h.createPlanning)
	plannings.PATCH("/:id", h.renamePlanning)
	plannings.DELETE("/:id", h.deletePlanning)
	plannings.POST("/:id/load", h.loadPlanning)
	plannings.POST("/:id/duplicate", h.duplicatePlanning)

	rg.GET("/selection", h.getSelection)
	rg.PUT("/selection", h.putSelection)

	rg.POST("/import", h.importDocument)
	rg.GET("/export", h.exportDocument)
	rg.POST("/reset", h.reset)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
