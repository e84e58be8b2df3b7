package llm

import (
	"strings"

	"k8s.io/klog/v2"
)

var rateLimitKeywords = []string{
	"429",
	"rate limit",
	"quota exceeded",
	"too many requests",
	"rate-limited",
	"resource_exhausted",
	"request rate exceeded",
}

// IsRateLimitError 判断错误是否为上游限流
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	for _, keyword := range rateLimitKeywords {
		if strings.Contains(errMsg, keyword) {
			return true
		}
	}
	return false
}

func logUpstreamError(component string, err error) {
	if IsRateLimitError(err) {
		klog.Warningf("[%s] 上游限流，请调大冷却时间: %v", component, err)
		return
	}
	klog.Errorf("[%s] 调用失败: %v", component, err)
}
