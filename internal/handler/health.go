package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceName 健康检查中返回的服务名
const ServiceName = "Sox Lab Backend"

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", h.Health)
}

// Health 不检查任何依赖
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": ServiceName + " is running",
	})
}
