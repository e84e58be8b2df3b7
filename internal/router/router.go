package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ringoforme/sock-whisperer-design-lab/config"
	"k8s.io/klog/v2"
)

const requestIDHeader = "X-Request-ID"

// RouteRegistrar 各 Handler 自行注册路由
type RouteRegistrar interface {
	RegisterRoutes(router gin.IRouter)
}

func Setup(cfg *config.Config, handlers ...RouteRegistrar) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(recoverJSON))
	r.Use(requestID())

	origins := cfg.CORS.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	for _, h := range handlers {
		h.RegisterRoutes(r)
	}

	return r
}

// recoverJSON 未处理的 panic 统一返回 500 {"error": ...}
func recoverJSON(c *gin.Context, recovered any) {
	klog.Errorf("[Router] 请求处理 panic: path=%s, err=%v", c.Request.URL.Path, recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprint(recovered)})
}

// requestID 沿用客户端的请求 ID，没有则生成
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()
		klog.V(6).Infof("[Router] %s %s status=%d latency=%s request_id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), id)
	}
}
