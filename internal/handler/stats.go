package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/subscriber"
)

type statsProvider interface {
	Snapshot() subscriber.DesignStats
}

// StatsHandler 返回进程启动以来的流水线计数
type StatsHandler struct {
	stats statsProvider
}

func NewStatsHandler(stats statsProvider) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/stats", h.GetStats)
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.stats.Snapshot())
}
