package llm

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"k8s.io/klog/v2"
)

// imageCreator openai.Client 中用到的方法
type imageCreator interface {
	CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error)
}

type ImageConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Size    string
	Quality string
}

// ImageModel 基于 OpenAI Images 接口的图片生成，每次只生成一张
type ImageModel struct {
	client  imageCreator
	model   string
	size    string
	quality string
}

func NewImageModel(cfg ImageConfig) (*ImageModel, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("image api key is empty")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(config)
	if client == nil {
		return nil, errors.New("error creating OpenAI client")
	}
	klog.V(6).Infof("[ImageModel] 创建图片客户端: model=%s, size=%s, quality=%s", cfg.Model, cfg.Size, cfg.Quality)
	return newImageModel(client, cfg), nil
}

func newImageModel(client imageCreator, cfg ImageConfig) *ImageModel {
	m := &ImageModel{
		client:  client,
		model:   cfg.Model,
		size:    cfg.Size,
		quality: cfg.Quality,
	}
	if m.model == "" {
		m.model = openai.CreateImageModelDallE3
	}
	if m.size == "" {
		m.size = openai.CreateImageSize1024x1024
	}
	if m.quality == "" {
		m.quality = openai.CreateImageQualityStandard
	}
	return m
}

func (m *ImageModel) Generate(ctx context.Context, prompt string) (string, error) {
	klog.V(6).Infof("[ImageModel] CreateImage 开始: promptLength=%d", len(prompt))

	resp, err := m.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          m.model,
		N:              1,
		Size:           m.size,
		Quality:        m.quality,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		logUpstreamError("ImageModel", err)
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", errors.New("image response contains no url")
	}

	klog.V(6).Infof("[ImageModel] CreateImage 完成: url=%s", resp.Data[0].URL)
	return resp.Data[0].URL, nil
}
