package main

import (
	"context"
	"flag"
	"log"

	"k8s.io/klog/v2"

	"github.com/ringoforme/sock-whisperer-design-lab/config"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/eventbus"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/handler"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/cooldown"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/imagesource"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/llm"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/router"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/service"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()
	ctx := context.Background()

	// 客户端创建失败时保持 nil，服务以未配置状态启动
	text := newTextGenerator(ctx, cfg)
	image := newImageGenerator(cfg)

	// 初始化事件总线
	designBus := eventbus.NewDesignEventBus()
	stats := subscriber.NewDesignEventSubscriber()
	stats.Register(designBus)

	policy := cooldown.New(cfg.Pipeline.Cooldown, cfg.Pipeline.RateLimitRPS, cfg.Pipeline.RateLimitBurst)
	designService := service.NewDesignService(text, image, policy, designBus)
	if !designService.Configured() {
		klog.Warningf("AI 服务未配置，生成接口将返回 500")
	}
	editService := service.NewEditService(newImageEditor(cfg), imagesource.NewLoader(cfg.Image.FetchTimeout), designBus)
	chatService := service.NewChatService(newChatter(ctx, cfg))

	r := router.Setup(cfg,
		handler.NewDesignHandler(designService),
		handler.NewEditHandler(editService),
		handler.NewChatHandler(chatService),
		handler.NewHealthHandler(),
		handler.NewStatsHandler(stats),
	)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newTextGenerator(ctx context.Context, cfg *config.Config) llm.TextGenerator {
	if cfg.LLM.Provider == "gemini" {
		gm, err := llm.NewGeminiModel(ctx, llm.GeminiConfig{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
		})
		if err != nil {
			klog.Errorf("初始化 Gemini 客户端失败: %v", err)
			return nil
		}
		return gm
	}

	cm, err := llm.NewChatModel(ctx, llm.ChatModelConfig{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.APIURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		klog.Errorf("初始化 OpenAI 文本客户端失败: %v", err)
		return nil
	}
	return cm
}

func newImageGenerator(cfg *config.Config) llm.ImageGenerator {
	im, err := llm.NewImageModel(llm.ImageConfig{
		APIKey:  cfg.Image.APIKey,
		BaseURL: cfg.Image.APIURL,
		Model:   cfg.Image.Model,
		Size:    cfg.Image.Size,
		Quality: cfg.Image.Quality,
	})
	if err != nil {
		klog.Errorf("初始化图片客户端失败: %v", err)
		return nil
	}
	return im
}

// newImageEditor 未配置时返回 nil 接口值
func newImageEditor(cfg *config.Config) llm.ImageEditor {
	em, err := llm.NewImageEditModel(llm.ImageEditConfig{
		APIKey:  cfg.Image.APIKey,
		BaseURL: cfg.Image.APIURL,
		Model:   cfg.Image.EditModel,
		Size:    cfg.Image.EditSize,
	})
	if err != nil {
		klog.Errorf("初始化图片编辑客户端失败: %v", err)
		return nil
	}
	return em
}

// newChatter 设计助手与文本生成使用同一提供方，openai 下使用独立的对话模型
func newChatter(ctx context.Context, cfg *config.Config) llm.Chatter {
	if cfg.LLM.Provider == "gemini" {
		gm, err := llm.NewGeminiModel(ctx, llm.GeminiConfig{
			APIKey:      cfg.Gemini.APIKey,
			Model:       cfg.Gemini.Model,
			Temperature: cfg.LLM.Temperature,
		})
		if err != nil {
			klog.Errorf("初始化 Gemini 对话客户端失败: %v", err)
			return nil
		}
		return gm
	}

	cm, err := llm.NewChatModel(ctx, llm.ChatModelConfig{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.APIURL,
		Model:       cfg.Chat.Model,
		MaxTokens:   cfg.Chat.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		klog.Errorf("初始化 OpenAI 对话客户端失败: %v", err)
		return nil
	}
	return cm
}
