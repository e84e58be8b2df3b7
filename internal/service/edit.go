package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/eventbus"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/llm"
	"k8s.io/klog/v2"
)

// ImageLoader 读取待编辑图片的字节
type ImageLoader interface {
	Load(ctx context.Context, source string) ([]byte, string, error)
}

// EditService 在已有设计图上按指令编辑，可选遮罩限定编辑区域
type EditService struct {
	editor llm.ImageEditor
	loader ImageLoader
	bus    *eventbus.DesignEventBus
}

// NewEditService editor 为 nil 时服务处于未配置状态
func NewEditService(editor llm.ImageEditor, loader ImageLoader, bus *eventbus.DesignEventBus) *EditService {
	return &EditService{editor: editor, loader: loader, bus: bus}
}

func (s *EditService) Configured() bool {
	return s.editor != nil && s.loader != nil
}

// EditImage 图片或遮罩无法读取时返回 ErrInvalidRequest，上游编辑失败时返回错误
func (s *EditService) EditImage(ctx context.Context, req domain.EditRequest) (*domain.GeneratedDesign, error) {
	if !s.Configured() {
		return nil, ErrServiceNotConfigured
	}
	instruction := strings.TrimSpace(req.Instruction)
	if strings.TrimSpace(req.ImageURL) == "" || instruction == "" {
		return nil, fmt.Errorf("%w: image_url and edit_instruction are required", ErrInvalidRequest)
	}

	image, _, err := s.loader.Load(ctx, req.ImageURL)
	if err != nil {
		klog.Warningf("[EditService] 原图读取失败: %v", err)
		return nil, fmt.Errorf("%w: load image: %v", ErrInvalidRequest, err)
	}
	var mask []byte
	if strings.TrimSpace(req.MaskData) != "" {
		mask, _, err = s.loader.Load(ctx, req.MaskData)
		if err != nil {
			klog.Warningf("[EditService] 遮罩读取失败: %v", err)
			return nil, fmt.Errorf("%w: load mask: %v", ErrInvalidRequest, err)
		}
	}

	klog.V(6).Infof("[EditService] 开始编辑图片: instruction=%s, withMask=%v", instruction, mask != nil)
	url, err := s.editor.Edit(ctx, image, mask, instruction)
	if err != nil {
		event := eventbus.DesignEvent{DesignName: domain.EditedDesignName, Prompt: instruction, Error: domain.FailureMessage(err)}
		publish(ctx, s.bus, "EditService", eventbus.DesignEventRenderFailed, event)
		return nil, fmt.Errorf("edit image: %w", err)
	}

	design := &domain.GeneratedDesign{
		URL:        url,
		Prompt:     instruction,
		DesignName: domain.EditedDesignName,
	}
	publish(ctx, s.bus, "EditService", eventbus.DesignEventRendered,
		eventbus.DesignEvent{DesignName: design.DesignName, Prompt: design.Prompt, URL: design.URL})
	klog.V(6).Infof("[EditService] 图片编辑完成")
	return design, nil
}
