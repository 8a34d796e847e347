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

type ChatHandler struct {
	chatUsecase *usecases.ChatUsecase
}

func NewChatHandler(chatUsecase *usecases.ChatUsecase) *ChatHandler {
	return &ChatHandler{chatUsecase: chatUsecase}
}

// ListMessages returns a team's message log, ascending by creation time.
// GET /api/v1/teams/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
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

	items, err := h.chatUsecase.FetchMessages(c.Request.Context(), userID, teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// SendMessage appends a message to the team channel. The created message is
// not echoed back; it reaches all clients, sender included, through the
// realtime change event.
// POST /api/v1/teams/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
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
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.chatUsecase.SendMessage(c.Request.Context(), userID, teamID, input.Text); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusAccepted, gin.H{"message": "Accepted"})
}
