package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"susafchat/internal/models"
	"susafchat/internal/service/chat"
	"susafchat/internal/session"
)

// ChatStreamer runs one streamed conversation turn.
type ChatStreamer interface {
	Stream(ctx context.Context, sessionID, message string, emit func(fragment string) error) error
}

// BacklogGenerator converts a SuSAF document into backlog items.
type BacklogGenerator interface {
	Generate(ctx context.Context, document json.RawMessage) ([]models.BacklogItem, error)
}

// Handler wires HTTP routes to the session store and the two services.
type Handler struct {
	store   *session.Store
	chat    ChatStreamer
	backlog BacklogGenerator
	logger  *zap.Logger
}

// NewHandler constructs a Handler instance.
func NewHandler(store *session.Store, chatSvc ChatStreamer, backlogSvc BacklogGenerator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, chat: chatSvc, backlog: backlogSvc, logger: logger}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/conversation", h.startConversation)
	router.POST("/conversation/:session_id", h.handleMessage)
	router.DELETE("/conversation/:session_id", h.endConversation)
	router.POST("/generate-backlog", h.generateBacklog)
}

func (h *Handler) startConversation(c *gin.Context) {
	sess := h.store.Create()
	h.logger.Info("session created", zap.String("session_id", sess.ID))
	c.JSON(http.StatusOK, gin.H{
		"session_id":      sess.ID,
		"welcome_message": chat.WelcomeMessage,
		"created_at":      sess.CreatedAt,
	})
}

type messageRequest struct {
	Message *string `json:"message"`
}

func (h *Handler) handleMessage(c *gin.Context) {
	sessionID := c.Param("session_id")
	sess, err := h.store.Get(sessionID)
	if err != nil || !sess.Active() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid or expired session"})
		return
	}

	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	emit := func(fragment string) error {
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", fragment); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := h.chat.Stream(c.Request.Context(), sessionID, *req.Message, emit); err != nil {
		// headers are already on the wire, so the stream just ends;
		// fragments sent before the failure are not retracted
		h.logger.Warn("turn aborted",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

func (h *Handler) endConversation(c *gin.Context) {
	sessionID := c.Param("session_id")
	if err := h.store.End(sessionID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Session ended"})
}

func (h *Handler) generateBacklog(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil || emptyDocument(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	items, err := h.backlog.Generate(c.Request.Context(), json.RawMessage(raw))
	if err != nil {
		h.logger.Warn("backlog generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// emptyDocument reports whether the request body carries no usable JSON
// document: absent, unparseable, or an empty/null value.
func emptyDocument(raw []byte) bool {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return true
	}
	switch v := doc.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case string:
		return v == ""
	default:
		return false
	}
}
