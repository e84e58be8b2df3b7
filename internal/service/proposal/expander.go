package proposal

import (
	"context"
	"fmt"

	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/cooldown"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/pkg/llm"
	"k8s.io/klog/v2"
)

// Expander 将一个创意扩展为多个设计方案，逐个顺序调用文本模型
type Expander struct {
	text     llm.TextGenerator
	cooldown cooldown.Policy
}

func NewExpander(text llm.TextGenerator, policy cooldown.Policy) *Expander {
	if policy == nil {
		policy = cooldown.None{}
	}
	return &Expander{text: text, cooldown: policy}
}

// Expand 返回 domain.VariationCount 个方案，任何一次文本生成失败都会中止并返回错误
func (e *Expander) Expand(ctx context.Context, idea domain.DesignIdea) ([]domain.StructuredProposal, error) {
	total := domain.VariationCount
	system := SystemInstruction()
	proposals := make([]domain.StructuredProposal, 0, total)

	for i := 1; i <= total; i++ {
		klog.V(6).Infof("[Expander] 生成第 %d/%d 个方案", i, total)

		raw, err := e.text.Generate(ctx, system, BuildUserContent(idea, i, total))
		if err != nil {
			klog.Errorf("[Expander] 第 %d 个方案生成失败: %v", i, err)
			return nil, fmt.Errorf("expand variation %d: %w", i, err)
		}

		proposal := Parse(raw)
		klog.V(6).Infof("[Expander] 第 %d 个方案解析完成: design_name=%s, promptLength=%d", i, proposal.DesignName, len(proposal.Prompt))
		proposals = append(proposals, proposal)

		if err := e.cooldown.Wait(ctx); err != nil {
			return nil, fmt.Errorf("cooldown after variation %d: %w", i, err)
		}
	}

	return proposals, nil
}
