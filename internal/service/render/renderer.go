package render

import (
	"context"
	"strings"

	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/cooldown"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/llm"
	"k8s.io/klog/v2"
)

// Renderer 为每个方案生成一张图片，单张失败时返回占位图
type Renderer struct {
	image    llm.ImageGenerator
	cooldown cooldown.Policy
}

func NewRenderer(image llm.ImageGenerator, policy cooldown.Policy) *Renderer {
	if policy == nil {
		policy = cooldown.None{}
	}
	return &Renderer{image: image, cooldown: policy}
}

// Render 按输入顺序返回结果，提示词为空的方案会被跳过
func (r *Renderer) Render(ctx context.Context, proposals []domain.StructuredProposal) []domain.GeneratedDesign {
	designs := make([]domain.GeneratedDesign, 0, len(proposals))

	for i, proposal := range proposals {
		if strings.TrimSpace(proposal.Prompt) == "" {
			klog.Warningf("[Renderer] 第 %d 个方案提示词为空，跳过", i+1)
			continue
		}

		designs = append(designs, r.renderOne(ctx, i+1, proposal))

		if err := r.cooldown.Wait(ctx); err != nil {
			klog.Warningf("[Renderer] 冷却等待中断: %v", err)
		}
	}

	return designs
}

func (r *Renderer) renderOne(ctx context.Context, index int, proposal domain.StructuredProposal) domain.GeneratedDesign {
	klog.V(6).Infof("[Renderer] 生成第 %d 张图片: design_name=%s", index, proposal.DesignName)

	url, err := r.image.Generate(ctx, proposal.Prompt)
	if err != nil {
		klog.Errorf("[Renderer] 第 %d 张图片生成失败，使用占位图: %v", index, err)
		return domain.GeneratedDesign{
			URL:        domain.PlaceholderImageURL,
			Prompt:     proposal.Prompt,
			DesignName: nameOr(proposal.DesignName, domain.FailedDesignName),
			Error:      domain.FailureMessage(err),
		}
	}

	return domain.GeneratedDesign{
		URL:        url,
		Prompt:     proposal.Prompt,
		DesignName: nameOr(proposal.DesignName, domain.UntitledDesignName),
	}
}

func nameOr(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}
