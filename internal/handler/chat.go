package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/service"
	"k8s.io/klog/v2"
)

type chatService interface {
	Configured() bool
	Chat(ctx context.Context, req domain.ChatRequest) (string, error)
}

type ChatRequest struct {
	Message             string            `json:"message" binding:"required"`
	SystemPrompt        string            `json:"system_prompt"`
	ConversationHistory []domain.ChatTurn `json:"conversation_history"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

type ChatHandler struct {
	service chatService
}

func NewChatHandler(service chatService) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/chat", h.Chat)
}

// Chat 设计助手对话，客户端断开时取消上游请求
func (h *ChatHandler) Chat(c *gin.Context) {
	if !h.service.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrServiceNotConfigured.Error()})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), domain.ChatRequest{
		Message:      req.Message,
		SystemPrompt: req.SystemPrompt,
		History:      req.ConversationHistory,
	})
	if err != nil {
		klog.Errorf("[ChatHandler] 对话失败: %v", err)
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Message: reply})
}
