package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/interfaces/http/middleware"
	"team-hub.backend/internal/interfaces/http/response"
	"team-hub.backend/internal/usecases"
)

type InvitationHandler struct {
	invitationUsecase *usecases.InvitationUsecase
}

func NewInvitationHandler(invitationUsecase *usecases.InvitationUsecase) *InvitationHandler {
	return &InvitationHandler{invitationUsecase: invitationUsecase}
}

// CreateInvitation records a pending invitation.
// POST /api/v1/teams/:id/invitations
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
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

	var input usecases.CreateInvitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	inv, err := h.invitationUsecase.CreateInvitation(c.Request.Context(), userID, teamID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"invitation": inv})
}

// ListInvitations returns a team's invitations.
// GET /api/v1/teams/:id/invitations
func (h *InvitationHandler) ListInvitations(c *gin.Context) {
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

	items, err := h.invitationUsecase.ListInvitations(c.Request.Context(), userID, teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// AcceptInvitation marks an invitation accepted.
// POST /api/v1/invitations/:id/accept
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid invitation ID"))
		return
	}

	if err := h.invitationUsecase.AcceptInvitation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Invitation accepted"})
}
