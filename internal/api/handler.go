package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/domain"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/service"
)

// Handler serves the chat, stats, and document endpoints.
type Handler struct {
	chat   *service.ChatService
	stats  *service.StatsService
	pdfDir string
}

// NewHandler creates a new handler.
func NewHandler(chat *service.ChatService, stats *service.StatsService, pdfDir string) *Handler {
	return &Handler{chat: chat, stats: stats, pdfDir: pdfDir}
}

// Chat handles POST /chat.
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query and session_id are required"})
		return
	}

	resp, err := h.chat.Chat(c.Request.Context(), &req)
	if err != nil {
		// History persistence failed; the turn was not durably recorded.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record chat history"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Stats handles GET /admin/stats.
func (h *Handler) Stats(c *gin.Context) {
	resp, err := h.stats.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDFFile handles GET /data/:filename, serving raw PDF bytes.
func (h *Handler) PDFFile(c *gin.Context) {
	// filepath.Base strips any path traversal from the parameter
	filename := filepath.Base(c.Param("filename"))
	path := filepath.Join(h.pdfDir, filename)

	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
