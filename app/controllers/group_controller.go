package controllers

import (
	"log/slog"
	"net/http"

	"yatube/app/metrics"
	"yatube/app/services"
)

// GroupController serves groups read-only
type GroupController struct {
	base
	groupService *services.GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService *services.GroupService, logger *slog.Logger, m *metrics.Metrics) *GroupController {
	return &GroupController{
		base:         newBase(logger, m),
		groupService: groupService,
	}
}

func (gc *GroupController) Index(w http.ResponseWriter, r *http.Request) {
	groups, err := gc.groupService.ListGroups()
	if err != nil {
		gc.sendServiceError(w, r, "group", err)
		return
	}
	gc.sendJSON(w, http.StatusOK, groups)
}

func (gc *GroupController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		gc.sendServiceError(w, r, "group", err)
		return
	}

	group, err := gc.groupService.GetGroup(id)
	if err != nil {
		gc.sendServiceError(w, r, "group", err)
		return
	}
	gc.sendJSON(w, http.StatusOK, group)
}
