package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zunxo7/DentalCare-AI/internal/domain"
	"github.com/zunxo7/DentalCare-AI/internal/logger"
	"github.com/zunxo7/DentalCare-AI/internal/prompts"
	"github.com/zunxo7/DentalCare-AI/internal/service"
)

// HistoryStore lists past messages for a conversation.
type HistoryStore interface {
	ListByConversation(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)
}

// ChatHandler handles the chat pipeline endpoints.
type ChatHandler struct {
	pipeline *service.Pipeline
	history  HistoryStore
}

// NewChatHandler creates a new chat handler.
// Parameters:
//   - pipeline: chat pipeline orchestrator.
//   - history: message store for conversation history.
// Returns:
//   - *ChatHandler: initialized handler.
func NewChatHandler(pipeline *service.Pipeline, history HistoryStore) *ChatHandler {
	return &ChatHandler{
		pipeline: pipeline,
		history:  history,
	}
}

// Chat handles POST /api/v1/chat. Fatal pipeline failures still answer with a
// safe fallback string localized to the detected language of the input.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ChatHandler) Chat(c *gin.Context) {
	var req service.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	resp, err := h.pipeline.Handle(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}

		logger.CtxError(c.Request.Context(), "Chat pipeline failed: error=%v", err)
		lang := service.DetectLanguage(req.Message)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Something went wrong",
			"text":      prompts.Reply(prompts.SafeFallbacks, string(lang)),
			"mediaUrls": []string{},
			"faqId":     nil,
			"queryId":   "",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History handles GET /api/v1/conversations/:id/messages.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ChatHandler) History(c *gin.Context) {
	conversationID := c.Param("id")
	if conversationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Conversation id is required",
		})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit parameter",
			})
			return
		}
		limit = n
	}

	msgs, err := h.history.ListByConversation(c.Request.Context(), conversationID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load conversation: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": msgs,
		"total":    len(msgs),
	})
}
