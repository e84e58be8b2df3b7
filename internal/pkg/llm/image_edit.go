package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
	"k8s.io/klog/v2"
)

// imageEditCreator openai.Client 中用到的编辑方法
type imageEditCreator interface {
	CreateEditImage(ctx context.Context, request openai.ImageEditRequest) (openai.ImageResponse, error)
}

type ImageEditConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Size    string
}

// ImageEditModel 基于 OpenAI Images 编辑接口，mask 透明区域为可编辑区域
type ImageEditModel struct {
	client imageEditCreator
	model  string
	size   string
}

func NewImageEditModel(cfg ImageEditConfig) (*ImageEditModel, error) {
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
	klog.V(6).Infof("[ImageEditModel] 创建图片编辑客户端: model=%s, size=%s", cfg.Model, cfg.Size)
	return newImageEditModel(client, cfg), nil
}

func newImageEditModel(client imageEditCreator, cfg ImageEditConfig) *ImageEditModel {
	m := &ImageEditModel{
		client: client,
		model:  cfg.Model,
		size:   cfg.Size,
	}
	if m.model == "" {
		m.model = openai.CreateImageModelDallE2
	}
	if m.size == "" {
		m.size = openai.CreateImageSize1024x1024
	}
	return m
}

func (m *ImageEditModel) Edit(ctx context.Context, image, mask []byte, instruction string) (string, error) {
	if len(image) == 0 {
		return "", errors.New("image to edit is empty")
	}
	klog.V(6).Infof("[ImageEditModel] CreateEditImage 开始: imageSize=%d, maskSize=%d, instructionLength=%d",
		len(image), len(mask), len(instruction))

	imageFile, err := writeTempImage(image)
	if err != nil {
		return "", err
	}
	defer removeTempImage(imageFile)

	req := openai.ImageEditRequest{
		Image:          imageFile,
		Prompt:         instruction,
		Model:          m.model,
		N:              1,
		Size:           m.size,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}
	if len(mask) > 0 {
		maskFile, err := writeTempImage(mask)
		if err != nil {
			return "", err
		}
		defer removeTempImage(maskFile)
		req.Mask = maskFile
	}

	resp, err := m.client.CreateEditImage(ctx, req)
	if err != nil {
		logUpstreamError("ImageEditModel", err)
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", errors.New("image edit response contains no data")
	}
	data := resp.Data[0]
	switch {
	case data.URL != "":
		klog.V(6).Infof("[ImageEditModel] CreateEditImage 完成: url=%s", data.URL)
		return data.URL, nil
	case data.B64JSON != "":
		klog.V(6).Infof("[ImageEditModel] CreateEditImage 完成: b64Length=%d", len(data.B64JSON))
		return "data:image/png;base64," + data.B64JSON, nil
	default:
		return "", errors.New("image edit response contains no url")
	}
}

// writeTempImage 编辑接口以 multipart 文件上传，需要落盘
func writeTempImage(data []byte) (*os.File, error) {
	f, err := os.CreateTemp("", "sock-edit-*.png")
	if err != nil {
		return nil, fmt.Errorf("create temp image: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		removeTempImage(f)
		return nil, fmt.Errorf("write temp image: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		removeTempImage(f)
		return nil, fmt.Errorf("rewind temp image: %w", err)
	}
	return f, nil
}

func removeTempImage(f *os.File) {
	name := f.Name()
	_ = f.Close()
	if err := os.Remove(name); err != nil {
		klog.V(6).Infof("[ImageEditModel] 删除临时文件失败: %s, %v", name, err)
	}
}
