package llm

import (
	"context"
	"errors"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"k8s.io/klog/v2"
)

// ChatModelConfig OpenAI 兼容接口的文本模型配置
// MaxTokens 为 0 时不限制输出长度，Temperature 为 nil 时使用模型默认值
type ChatModelConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature *float32
}

// ChatModel 基于 Eino ChatModel 的文本生成
type ChatModel struct {
	chatModel model.BaseChatModel
}

// NewChatModel 创建 OpenAI ChatModel
func NewChatModel(ctx context.Context, cfg ChatModelConfig) (*ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is empty")
	}
	klog.V(6).Infof("[ChatModel] 创建 OpenAI ChatModel: model=%s, baseURL=%s", cfg.Model, cfg.BaseURL)

	chatModel, err := openai.NewChatModel(ctx, buildOpenAIConfig(cfg))
	if err != nil {
		klog.Errorf("[ChatModel] 创建 ChatModel 失败: %v", err)
		return nil, err
	}

	klog.V(6).Infof("[ChatModel] ChatModel 创建成功")
	return NewChatModelFrom(chatModel), nil
}

// buildOpenAIConfig 未设置的 MaxTokens 与 Temperature 不下发，由服务端使用默认值
func buildOpenAIConfig(cfg ChatModelConfig) *openai.ChatModelConfig {
	config := &openai.ChatModelConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		config.MaxTokens = &maxTokens
	}
	if cfg.Temperature != nil {
		temperature := *cfg.Temperature
		config.Temperature = &temperature
	}
	return config
}

// NewChatModelFrom 使用已有的 Eino ChatModel
func NewChatModelFrom(chatModel model.BaseChatModel) *ChatModel {
	return &ChatModel{chatModel: chatModel}
}

func (m *ChatModel) Generate(ctx context.Context, system, user string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}
	klog.V(6).Infof("[ChatModel] Generate 开始: systemLength=%d, userLength=%d", len(system), len(user))
	klog.V(8).Infof("[ChatModel] Generate user content=%s", user)

	resp, err := m.chatModel.Generate(ctx, messages)
	if err != nil {
		logUpstreamError("ChatModel", err)
		return "", err
	}
	if resp == nil {
		return "", errors.New("chat model returned empty response")
	}

	klog.V(6).Infof("[ChatModel] Generate 完成: responseLength=%d", len(resp.Content))
	return resp.Content, nil
}

// Chat 多轮对话
func (m *ChatModel) Chat(ctx context.Context, system string, turns []Turn) (string, error) {
	messages := make([]*schema.Message, 0, len(turns)+1)
	messages = append(messages, schema.SystemMessage(system))
	for _, turn := range turns {
		if turn.Role == RoleAssistant {
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		} else {
			messages = append(messages, schema.UserMessage(turn.Content))
		}
	}
	klog.V(6).Infof("[ChatModel] Chat 开始: messageCount=%d", len(messages))

	resp, err := m.chatModel.Generate(ctx, messages)
	if err != nil {
		logUpstreamError("ChatModel", err)
		return "", err
	}
	if resp == nil || resp.Content == "" {
		return "", errors.New("chat model returned empty response")
	}

	klog.V(6).Infof("[ChatModel] Chat 完成: responseLength=%d", len(resp.Content))
	return resp.Content, nil
}
