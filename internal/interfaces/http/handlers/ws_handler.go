package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	domainerrors "team-hub.backend/internal/domain/errors"
	"team-hub.backend/internal/interfaces/http/middleware"
	"team-hub.backend/internal/interfaces/http/response"
	"team-hub.backend/internal/realtime"
	"team-hub.backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, replace with proper origin checking
	},
}

type WSHandler struct {
	hub *realtime.Hub
}

func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Connect upgrades to a websocket, attaches a synchronizer session and
// starts the read/write pumps. An optional team_id query parameter selects
// a team right after bootstrap.
// GET /api/v1/ws
func (h *WSHandler) Connect(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("not authenticated"))
		return
	}

	var preselect uuid.UUID
	if raw := c.Query("team_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid team ID"))
			return
		}
		preselect = id
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error(c.Request.Context(), "websocket upgrade failed", zap.Error(err))
		return
	}

	session := realtime.NewSession(userID)
	client := realtime.NewClient(h.hub, conn, session)

	if err := h.hub.Register(c.Request.Context(), client); err != nil {
		logger.Error(c.Request.Context(), "websocket bootstrap failed", zap.Error(err))
		_ = conn.Close()
		return
	}

	if preselect != uuid.Nil {
		// Selection only sticks if the user belongs to the team; the
		// synchronizer checks against the bootstrapped team list.
		if err := client.Preselect(c.Request.Context(), preselect); err != nil {
			logger.Warn(c.Request.Context(), "team preselect failed", zap.Error(err))
		}
	}

	go client.WritePump()
	go client.ReadPump()
}
