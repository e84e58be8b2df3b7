package utils

import (
	"encoding/json"
	"regexp"
	"strings"

	"k8s.io/klog/v2"
)

// fencedBlockPattern 匹配第一个 ``` 代码块，语言标识可选（markdown、md 等），标识后必须换行
var fencedBlockPattern = regexp.MustCompile("(?s)```(?:[A-Za-z0-9_+-]+[ \\t]*\\r?\\n)?\\s*(.*?)\\s*```")

// ExtractFencedBlock 从文本中提取第一个代码块的内容
// 没有代码块时返回去除首尾空白的原始内容，第二个返回值为 false
func ExtractFencedBlock(content string) (string, bool) {
	match := fencedBlockPattern.FindStringSubmatch(content)
	if match == nil {
		klog.V(6).Infof("[ExtractFencedBlock] 未找到代码块，返回原始内容")
		return strings.TrimSpace(content), false
	}
	klog.V(6).Infof("[ExtractFencedBlock] 提取到代码块，长度: %d", len(match[1]))
	return match[1], true
}

func ToJSON(v any) string {
	jsonData, err := json.Marshal(v)
	if err != nil {
		klog.Errorf("JSON序列化失败: %v", err)
		return ""
	}
	return string(jsonData)
}
