package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/interfaces/http/middleware"
	"team-hub.backend/internal/interfaces/http/response"
	"team-hub.backend/internal/usecases"
)

type SnapshotHandler struct {
	snapshotUsecase *usecases.SnapshotUsecase
}

func NewSnapshotHandler(snapshotUsecase *usecases.SnapshotUsecase) *SnapshotHandler {
	return &SnapshotHandler{snapshotUsecase: snapshotUsecase}
}

// UpsertSnapshot overwrites the caller's snapshot of the given kind.
// PUT /api/v1/teams/:id/snapshots/:kind
func (h *SnapshotHandler) UpsertSnapshot(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid team ID"))
		return
	}
	kind := entities.SnapshotKind(c.Param("kind"))

	var input struct {
		State json.RawMessage `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	snap, err := h.snapshotUsecase.UpsertSnapshot(c.Request.Context(), userID, teamID, kind, input.State)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"snapshot": snap})
}

// GetSnapshot returns a teammate's snapshot, or a null snapshot when none
// has been saved.
// GET /api/v1/teams/:id/snapshots/:kind/:userId
func (h *SnapshotHandler) GetSnapshot(c *gin.Context) {
	callerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid team ID"))
		return
	}
	ownerID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}
	kind := entities.SnapshotKind(c.Param("kind"))

	snap, err := h.snapshotUsecase.FetchSnapshot(c.Request.Context(), callerID, teamID, ownerID, kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"snapshot": snap})
}
