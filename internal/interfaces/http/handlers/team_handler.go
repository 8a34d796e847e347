package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"team-hub.backend/internal/domain/entities"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/interfaces/http/middleware"
	"team-hub.backend/internal/interfaces/http/response"
	"team-hub.backend/internal/usecases"
)

type TeamHandler struct {
	teamUsecase *usecases.TeamUsecase
}

func NewTeamHandler(teamUsecase *usecases.TeamUsecase) *TeamHandler {
	return &TeamHandler{teamUsecase: teamUsecase}
}

// ListTeams returns the caller's teams, most recently joined first.
// GET /api/v1/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	items, err := h.teamUsecase.ListTeams(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// CreateTeam creates a team with the caller as admin.
// POST /api/v1/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	var input entities.CreateTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	team, err := h.teamUsecase.CreateTeam(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"team": team})
}

// JoinTeam joins a team by code.
// POST /api/v1/teams/join
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	var input entities.JoinTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	team, err := h.teamUsecase.JoinTeam(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"team": team})
}

// GetTeam returns one of the caller's teams.
// GET /api/v1/teams/:id
func (h *TeamHandler) GetTeam(c *gin.Context) {
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

	team, err := h.teamUsecase.GetTeam(c.Request.Context(), userID, teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"team": team})
}

// DeleteTeam deletes a team. Creator only; not recoverable.
// DELETE /api/v1/teams/:id
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
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

	if err := h.teamUsecase.DeleteTeam(c.Request.Context(), userID, teamID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Team deleted"})
}

// LeaveTeam removes the caller's own membership.
// POST /api/v1/teams/:id/leave
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
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

	if err := h.teamUsecase.LeaveTeam(c.Request.Context(), userID, teamID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Left team"})
}

// ListMembers returns a team's members with display profiles.
// GET /api/v1/teams/:id/members
func (h *TeamHandler) ListMembers(c *gin.Context) {
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

	isMember, err := h.teamUsecase.IsMember(c.Request.Context(), userID, teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !isMember {
		response.Error(c, domainerrors.Forbidden("not a member of this team"))
		return
	}

	items, err := h.teamUsecase.ListMembers(c.Request.Context(), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// RegenerateCodes replaces both join codes. Admin only.
// POST /api/v1/teams/:id/codes
func (h *TeamHandler) RegenerateCodes(c *gin.Context) {
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

	team, err := h.teamUsecase.RegenerateCodes(c.Request.Context(), userID, teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"team": team})
}

// SetPassword sets or clears the join password. Admin only.
// PUT /api/v1/teams/:id/password
func (h *TeamHandler) SetPassword(c *gin.Context) {
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

	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.teamUsecase.SetPassword(c.Request.Context(), userID, teamID, input.Password); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}
