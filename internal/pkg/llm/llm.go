// Package llm 封装文本生成与图片生成的上游服务
package llm

import "context"

// TextGenerator 文本生成，system 为系统指令，user 为用户消息
type TextGenerator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Turn 多轮对话中的一条消息，Role 为 user 或 assistant
type Turn struct {
	Role    string
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chatter 多轮对话，turns 的最后一条为当前用户消息
type Chatter interface {
	Chat(ctx context.Context, system string, turns []Turn) (string, error)
}

// ImageGenerator 图片生成，返回可访问的图片 URL
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageEditor 按指令编辑已有图片，mask 为空时整图编辑
type ImageEditor interface {
	Edit(ctx context.Context, image, mask []byte, instruction string) (string, error)
}
