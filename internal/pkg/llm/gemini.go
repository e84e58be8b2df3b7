package llm

import (
	"context"
	"errors"

	"google.golang.org/genai"
	"k8s.io/klog/v2"
)

// contentGenerator genai.Models 中用到的方法
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// MaxTokens 为 0 时不限制输出长度，思考 token 也计入该上限
type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature *float32
}

// GeminiModel 基于 Gemini 的文本生成
type GeminiModel struct {
	models      contentGenerator
	model       string
	maxTokens   int32
	temperature *float32
}

func NewGeminiModel(ctx context.Context, cfg GeminiConfig) (*GeminiModel, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	klog.V(6).Infof("[GeminiModel] 创建 Gemini 客户端: model=%s", cfg.Model)

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		klog.Errorf("[GeminiModel] 创建客户端失败: %v", err)
		return nil, err
	}
	return newGeminiModel(cli.Models, cfg), nil
}

func newGeminiModel(models contentGenerator, cfg GeminiConfig) *GeminiModel {
	return &GeminiModel{
		models:      models,
		model:       cfg.Model,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: cfg.Temperature,
	}
}

func (g *GeminiModel) Generate(ctx context.Context, system, user string) (string, error) {
	klog.V(6).Infof("[GeminiModel] Generate 开始: model=%s, userLength=%d", g.model, len(user))
	return g.generate(ctx, system, genai.Text(user))
}

// Chat 多轮对话，assistant 消息映射为 model 角色
func (g *GeminiModel) Chat(ctx context.Context, system string, turns []Turn) (string, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		role := genai.Role(genai.RoleUser)
		if turn.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	klog.V(6).Infof("[GeminiModel] Chat 开始: model=%s, turnCount=%d", g.model, len(contents))
	return g.generate(ctx, system, contents)
}

func (g *GeminiModel) generate(ctx context.Context, system string, contents []*genai.Content) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	if g.maxTokens > 0 {
		config.MaxOutputTokens = g.maxTokens
	}
	if g.temperature != nil {
		config.Temperature = genai.Ptr(*g.temperature)
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		logUpstreamError("GeminiModel", err)
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned empty response")
	}

	klog.V(6).Infof("[GeminiModel] 生成完成: responseLength=%d", len(text))
	return text, nil
}
