package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/llm"
	"k8s.io/klog/v2"
)

// ChatService 设计助手对话，只保留最近 domain.ChatHistoryLimit 条历史
type ChatService struct {
	chatter llm.Chatter
}

// NewChatService chatter 为 nil 时服务处于未配置状态
func NewChatService(chatter llm.Chatter) *ChatService {
	return &ChatService{chatter: chatter}
}

func (s *ChatService) Configured() bool {
	return s.chatter != nil
}

func (s *ChatService) Chat(ctx context.Context, req domain.ChatRequest) (string, error) {
	if !s.Configured() {
		return "", ErrServiceNotConfigured
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return "", fmt.Errorf("%w: message is required", ErrInvalidRequest)
	}
	system := strings.TrimSpace(req.SystemPrompt)
	if system == "" {
		system = domain.DefaultChatSystemPrompt
	}

	turns := BuildChatTurns(req.History, message)
	klog.V(6).Infof("[ChatService] 收到对话请求: historyLength=%d, turnCount=%d", len(req.History), len(turns))

	reply, err := s.chatter.Chat(ctx, system, turns)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return reply, nil
}

// BuildChatTurns 过滤无效历史并截取最近的部分，当前消息不在末尾时追加
func BuildChatTurns(history []domain.ChatTurn, message string) []llm.Turn {
	valid := make([]llm.Turn, 0, len(history)+1)
	for _, h := range history {
		if strings.TrimSpace(h.Content) == "" {
			continue
		}
		switch h.Role {
		case domain.ChatRoleUser:
			valid = append(valid, llm.Turn{Role: llm.RoleUser, Content: h.Content})
		case domain.ChatRoleAssistant:
			valid = append(valid, llm.Turn{Role: llm.RoleAssistant, Content: h.Content})
		}
	}
	if len(valid) > domain.ChatHistoryLimit {
		valid = valid[len(valid)-domain.ChatHistoryLimit:]
	}

	if n := len(valid); n == 0 || valid[n-1].Role != llm.RoleUser || strings.TrimSpace(valid[n-1].Content) != message {
		valid = append(valid, llm.Turn{Role: llm.RoleUser, Content: message})
	}
	return valid
}
