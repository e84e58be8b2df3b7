package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/eventbus"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/cooldown"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/llm"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/service/proposal"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/service/render"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/utils"
	"k8s.io/klog/v2"
)

var (
	ErrServiceNotConfigured = errors.New("AI service is not configured, check the API key")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrNoDesign             = errors.New("unable to generate image")
)

// DesignService 创意 -> 方案 -> 图片 的完整流水线
type DesignService struct {
	expander   *proposal.Expander
	renderer   *render.Renderer
	bus        *eventbus.DesignEventBus
	configured bool
}

// NewDesignService text 或 image 为 nil 时服务处于未配置状态，生成接口直接返回 ErrServiceNotConfigured
func NewDesignService(text llm.TextGenerator, image llm.ImageGenerator, policy cooldown.Policy, bus *eventbus.DesignEventBus) *DesignService {
	return &DesignService{
		expander:   proposal.NewExpander(text, policy),
		renderer:   render.NewRenderer(image, policy),
		bus:        bus,
		configured: text != nil && image != nil,
	}
}

func (s *DesignService) Configured() bool {
	return s.configured
}

// GenerateDesigns 扩展为 domain.VariationCount 个方案并逐个出图
func (s *DesignService) GenerateDesigns(ctx context.Context, idea domain.DesignIdea) ([]domain.GeneratedDesign, error) {
	if !s.configured {
		return nil, ErrServiceNotConfigured
	}
	if strings.TrimSpace(idea.Idea) == "" {
		return nil, fmt.Errorf("%w: idea is required", ErrInvalidRequest)
	}

	klog.V(6).Infof("[DesignService] 开始生成设计: idea=%s", idea.Idea)
	proposals, err := s.expander.Expand(ctx, idea)
	if err != nil {
		s.publish(ctx, eventbus.DesignEventExpandFailed, eventbus.DesignEvent{Error: err.Error()})
		return nil, err
	}
	for _, p := range proposals {
		s.publish(ctx, eventbus.DesignEventProposalExpanded, eventbus.DesignEvent{DesignName: p.DesignName, Prompt: p.Prompt})
	}

	designs := s.renderer.Render(ctx, proposals)
	s.publishDesigns(ctx, designs)

	klog.V(6).Infof("[DesignService] 设计生成完成: count=%d", len(designs))
	klog.V(8).Infof("[DesignService] 设计结果: %s", utils.ToJSON(designs))
	return designs, nil
}

// RegenerateImage 使用用户修改后的提示词重新出图
func (s *DesignService) RegenerateImage(ctx context.Context, prompt string) (*domain.GeneratedDesign, error) {
	if !s.configured {
		return nil, ErrServiceNotConfigured
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrInvalidRequest)
	}

	klog.V(6).Infof("[DesignService] 重新生成图片: promptLength=%d", len(prompt))
	designs := s.renderer.Render(ctx, []domain.StructuredProposal{{
		DesignName: domain.CustomEditDesignName,
		Prompt:     prompt,
	}})
	if len(designs) == 0 {
		return nil, ErrNoDesign
	}
	s.publishDesigns(ctx, designs)
	return &designs[0], nil
}

func (s *DesignService) publishDesigns(ctx context.Context, designs []domain.GeneratedDesign) {
	for _, d := range designs {
		event := eventbus.DesignEvent{DesignName: d.DesignName, Prompt: d.Prompt, URL: d.URL, Error: d.Error}
		if d.Failed() {
			s.publish(ctx, eventbus.DesignEventRenderFailed, event)
		} else {
			s.publish(ctx, eventbus.DesignEventRendered, event)
		}
	}
}

func (s *DesignService) publish(ctx context.Context, eventType eventbus.DesignEventType, event eventbus.DesignEvent) {
	publish(ctx, s.bus, "DesignService", eventType, event)
}

func publish(ctx context.Context, bus *eventbus.DesignEventBus, source string, eventType eventbus.DesignEventType, event eventbus.DesignEvent) {
	if bus == nil {
		return
	}
	event.Type = eventType
	if err := bus.Publish(ctx, eventType, event); err != nil {
		klog.Warningf("[%s] 事件处理失败: type=%s, err=%v", source, eventType, err)
	}
}
