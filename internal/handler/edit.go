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

type editService interface {
	Configured() bool
	EditImage(ctx context.Context, req domain.EditRequest) (*domain.GeneratedDesign, error)
}

// EditImageRequest image_url 与 mask_data 可以是 http(s) 地址、data URL 或 base64
type EditImageRequest struct {
	ImageURL        string `json:"image_url" binding:"required"`
	MaskData        string `json:"mask_data"`
	EditInstruction string `json:"edit_instruction" binding:"required"`
}

type EditHandler struct {
	service editService
}

func NewEditHandler(service editService) *EditHandler {
	return &EditHandler{service: service}
}

func (h *EditHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/edit_image", h.EditImage)
}

// EditImage 按指令编辑已有设计图，带 mask_data 时只编辑遮罩区域
func (h *EditHandler) EditImage(c *gin.Context) {
	if !h.service.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrServiceNotConfigured.Error()})
		return
	}

	var req EditImageRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.ImageURL) == "" || strings.TrimSpace(req.EditInstruction) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_url and edit_instruction are required"})
		return
	}

	design, err := h.service.EditImage(context.WithoutCancel(c.Request.Context()), domain.EditRequest{
		ImageURL:    req.ImageURL,
		MaskData:    req.MaskData,
		Instruction: req.EditInstruction,
	})
	if err != nil {
		klog.Errorf("[EditHandler] 编辑图片失败: %v", err)
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, design)
}
