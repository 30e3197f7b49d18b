package chat

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docchat-backend/internal/documents"
	"docchat-backend/internal/llm"
	"docchat-backend/internal/shared/server/respond"
	"docchat-backend/internal/shared/telemetry"
)

// Handler answers natural-language questions over the stored documents.
type Handler struct {
	Docs *documents.Store
	LLM  llm.Client
}

// NewHandler constructs a Handler.
func NewHandler(docs *documents.Store, client llm.Client) *Handler {
	return &Handler{Docs: docs, LLM: client}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.chat)
}

type chatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Message is required", nil)
		return
	}

	docs := h.Docs.All()
	if len(docs) == 0 {
		respond.JSON(c, http.StatusOK, gin.H{"response": NoDocumentsAnswer})
		return
	}

	prompt := buildChatPrompt(BuildContext(docs), req.Message)
	answer, err := h.LLM.Complete(c.Request.Context(), prompt)
	if err != nil {
		telemetry.Error("chat.failed", map[string]any{"err": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to generate chat response", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"response": answer})
}
