package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polesk/storebot/internal/adapter/chat"
	"github.com/polesk/storebot/internal/bot"
	"github.com/polesk/storebot/internal/server/http/dto"
)

// EventRouter dispatches one inbound event and returns the reply owed to
// the acting user.
type EventRouter interface {
	HandleEvent(ctx context.Context, event chat.Event) bot.Reply
}

// InteractionHandler serves the button-interaction webhook: the second
// front end next to the event pump. Both feed the same router.
type InteractionHandler struct {
	router EventRouter
}

// NewInteractionHandler constructs InteractionHandler.
func NewInteractionHandler(router EventRouter) *InteractionHandler {
	return &InteractionHandler{router: router}
}

// Handle processes POST /api/interactions.
func (h *InteractionHandler) Handle(c *gin.Context) {
	var req dto.InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if req.Type == "ping" {
		c.JSON(http.StatusOK, dto.InteractionResponse{Type: dto.InteractionResponsePong})
		return
	}

	if req.Code == "" || req.UserID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	reply := h.router.HandleEvent(c.Request.Context(), chat.Event{
		Type:      chat.EventTypeButton,
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
		Code:      req.Code,
	})

	c.JSON(http.StatusOK, dto.InteractionResponse{
		Type:      dto.InteractionResponseMessage,
		Content:   reply.Text,
		Ephemeral: reply.Ephemeral,
	})
}

// Health processes GET /healthz.
func (h *InteractionHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
