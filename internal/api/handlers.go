package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/plangrid/internal/domain"
	"github.com/alexanderramin/plangrid/internal/exchange"
	"github.com/alexanderramin/plangrid/internal/store"
	"github.com/gin-gonic/gin"
)

// Handler exposes the store over HTTP.
type Handler struct {
	store *store.Store
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) projectResps(projects []domain.Project) []projectResp {
	dtos := exchange.ProjectDTOs(projects)
	out := make([]projectResp, 0, len(projects))
	for i, p := range projects {
		out = append(out, projectResp{ProjectDTO: dtos[i], Color: h.store.ProjectColor(p)})
	}
	return out
}

func (h *Handler) projectResp(p domain.Project) projectResp {
	return h.projectResps([]domain.Project{p})[0]
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}

// Timeline

func (h *Handler) getTimeline(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":             true,
		"timelineConfig": exchange.ConfigDTO(h.store.TimelineConfig()),
		"cells":          toCells(h.store.Cells()),
		"cards":          toCards(h.store.Cards()),
	})
}

func (h *Handler) patchTimeline(c *gin.Context) {
	var req exchange.TimelineConfigDTO
	if !bind(c, &req) {
		return
	}
	patch, err := req.Patch()
	if err != nil {
		fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	results, err := h.store.UpdateTimelineConfig(c.Request.Context(), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"timelineConfig":  exchange.ConfigDTO(h.store.TimelineConfig()),
		"reconciliations": toReconciliations(results),
	})
}

func (h *Handler) listCells(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "cells": toCells(h.store.Cells())})
}

func (h *Handler) listCards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "cards": toCards(h.store.Cards())})
}

func (h *Handler) cardProjects(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(h.store.Cards()) {
		fail(c, fmt.Errorf("card %q: %w", c.Param("index"), domain.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": h.projectResps(h.store.ProjectsForCard(index))})
}

// Projects

func (h *Handler) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": h.projectResps(h.store.Projects())})
}

func (h *Handler) getProject(c *gin.Context) {
	p, ok := h.store.Project(c.Param("id"))
	if !ok {
		fail(c, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": h.projectResp(p)})
}

func (h *Handler) createProject(c *gin.Context) {
	var req projectReq
	if !bind(c, &req) {
		return
	}
	in, err := req.project()
	if err != nil {
		fail(c, err)
		return
	}

	p, err := h.store.AddProject(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": h.projectResp(p)})
}

func (h *Handler) updateProject(c *gin.Context) {
	var req projectReq
	if !bind(c, &req) {
		return
	}
	patch, err := req.patch()
	if err != nil {
		fail(c, err)
		return
	}

	p, err := h.store.UpdateProject(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": h.projectResp(p)})
}

func (h *Handler) moveProject(c *gin.Context) {
	var req spanReq
	if !bind(c, &req) {
		return
	}
	start, end, err := req.dates()
	if err != nil {
		fail(c, err)
		return
	}

	id := c.Param("id")
	current, ok := h.store.Project(id)
	if !ok {
		fail(c, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, id))
		return
	}
	row := domain.IntFromPtrWithDefault(current.Row, req.Row)

	p, err := h.store.MoveProject(c.Request.Context(), id, start, end, row)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": h.projectResp(p)})
}

func (h *Handler) resizeProject(c *gin.Context) {
	var req spanReq
	if !bind(c, &req) {
		return
	}
	start, end, err := req.dates()
	if err != nil {
		fail(c, err)
		return
	}

	p, err := h.store.ResizeProject(c.Request.Context(), c.Param("id"), start, end)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": h.projectResp(p)})
}

func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.store.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Groups

func (h *Handler) listGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "groups": exchange.GroupDTOs(h.store.Groups())})
}

func (h *Handler) createGroup(c *gin.Context) {
	var req groupReq
	if !bind(c, &req) {
		return
	}

	g, err := h.store.AddGroup(c.Request.Context(), deref(req.Name), deref(req.Color))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "group": exchange.GroupDTOs([]domain.Group{g})[0]})
}

func (h *Handler) updateGroup(c *gin.Context) {
	var req groupReq
	if !bind(c, &req) {
		return
	}

	g, err := h.store.UpdateGroup(c.Request.Context(), c.Param("id"), domain.GroupPatch{Name: req.Name, Color: req.Color})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "group": exchange.GroupDTOs([]domain.Group{g})[0]})
}

func (h *Handler) deleteGroup(c *gin.Context) {
	if err := h.store.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Plannings

func (h *Handler) listPlannings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"plannings": toPlannings(h.store.Plannings()),
		"activeId":  h.store.ActivePlanningID(),
	})
}

func (h *Handler) createPlanning(c *gin.Context) {
	var req planningReq
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	id, err := h.store.CreatePlanning(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id})
}

func (h *Handler) loadPlanning(c *gin.Context) {
	if err := h.store.LoadPlanning(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "activeId": h.store.ActivePlanningID()})
}

func (h *Handler) renamePlanning(c *gin.Context) {
	var req planningReq
	if !bind(c, &req) {
		return
	}
	if err := h.store.RenamePlanning(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Name)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) duplicatePlanning(c *gin.Context) {
	var req planningReq
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	id, err := h.store.DuplicatePlanning(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Name))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id})
}

func (h *Handler) deletePlanning(c *gin.Context) {
	if err := h.store.DeletePlanning(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "activeId": h.store.ActivePlanningID()})
}

// Selection

func (h *Handler) getSelection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "selection": selectionResp{
		ProjectID: h.store.SelectedProjectID(),
		CardIndex: h.store.SelectedCardIndex(),
	}})
}

func (h *Handler) putSelection(c *gin.Context) {
	var req selectionReq
	if !bind(c, &req) {
		return
	}
	if req.CardIndex != nil {
		if err := h.store.SelectCard(*req.CardIndex); err != nil {
			fail(c, err)
			return
		}
	}
	if req.ProjectID != nil {
		if err := h.store.SelectProject(*req.ProjectID); err != nil {
			fail(c, err)
			return
		}
	}
	h.getSelection(c)
}

// Transfer

func (h *Handler) importDocument(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	result, err := h.store.Import(c.Request.Context(), data)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "import": importResp{
		Format:   string(result.Format),
		Projects: result.Projects,
		Groups:   result.Groups,
	}})
}

func (h *Handler) exportDocument(c *gin.Context) {
	env := h.store.Export()

	var (
		data        []byte
		err         error
		contentType string
	)
	format := c.DefaultQuery("format", "json")
	switch format {
	case "json":
		data, err = env.JSON()
		contentType = "application/json"
	case "yaml":
		data, err = env.YAML()
		contentType = "application/yaml"
	default:
		fail(c, fmt.Errorf("%w: unknown export format %q", errBadRequest, format))
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	name := exchange.FileName(time.Now(), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, data)
}

func (h *Handler) reset(c *gin.Context) {
	if err := h.store.Reset(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
