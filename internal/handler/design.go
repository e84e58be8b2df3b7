package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/service"
	"k8s.io/klog/v2"
)

type designService interface {
	Configured() bool
	GenerateDesigns(ctx context.Context, idea domain.DesignIdea) ([]domain.GeneratedDesign, error)
	RegenerateImage(ctx context.Context, prompt string) (*domain.GeneratedDesign, error)
}

type GenerateDesignsRequest struct {
	Idea         string `json:"idea" binding:"required"`
	SockLength   string `json:"sock_length"`
	ColorPalette string `json:"color_palette"`
	AccentColors string `json:"accent_colors"`
}

type RegenerateImageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type DesignHandler struct {
	service designService
}

func NewDesignHandler(service designService) *DesignHandler {
	return &DesignHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *DesignHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/generate_designs", h.GenerateDesigns)
	router.POST("/regenerate_image", h.RegenerateImage)
}

// GenerateDesigns 根据创意生成 4 个设计
// 流水线开始后不随客户端断开而取消
func (h *DesignHandler) GenerateDesigns(c *gin.Context) {
	if !h.service.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrServiceNotConfigured.Error()})
		return
	}

	var req GenerateDesignsRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Idea) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idea is required"})
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	designs, err := h.service.GenerateDesigns(ctx, domain.DesignIdea{
		Idea:         req.Idea,
		SockLength:   req.SockLength,
		ColorPalette: req.ColorPalette,
		AccentColors: req.AccentColors,
	})
	if err != nil {
		klog.Errorf("[DesignHandler] 生成设计失败: %v", err)
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, designs)
}

// RegenerateImage 使用修改后的提示词重新生成单张图片
func (h *DesignHandler) RegenerateImage(c *gin.Context) {
	if !h.service.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrServiceNotConfigured.Error()})
		return
	}

	var req RegenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	design, err := h.service.RegenerateImage(context.WithoutCancel(c.Request.Context()), req.Prompt)
	if err != nil {
		klog.Errorf("[DesignHandler] 重新生成图片失败: %v", err)
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, design)
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
