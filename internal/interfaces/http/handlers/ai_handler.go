package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"team-hub.backend/internal/usecases"
)

type AIHandler struct {
	aiUsecase *usecases.AIUsecase
}

func NewAIHandler(aiUsecase *usecases.AIUsecase) *AIHandler {
	return &AIHandler{aiUsecase: aiUsecase}
}

// Chat forwards a prompt to the upstream generative endpoint and relays the
// text result, or the provider's error verbatim.
// POST /api/v1/ai/chat
func (h *AIHandler) Chat(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	raw, ok := body["prompt"]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}
	var prompt string
	if err := json.Unmarshal(raw, &prompt); err != nil || prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt must be a non-empty string"})
		return
	}

	result, err := h.aiUsecase.Complete(c.Request.Context(), prompt)
	if err != nil {
		var upstream *usecases.UpstreamError
		if errors.As(err, &upstream) {
			out := gin.H{"error": upstream.Message}
			if upstream.Status != 0 {
				out["status"] = upstream.Status
			}
			if upstream.Raw != nil {
				out["raw"] = upstream.Raw
			}
			c.JSON(http.StatusBadGateway, out)
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
