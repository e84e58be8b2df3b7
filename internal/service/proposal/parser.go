package proposal

import (
	"regexp"
	"strings"

	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
	"github.com/ringoforme/sock-whisperer-design-lab/internal/utils"
	"k8s.io/klog/v2"
)

// designStyleMarker 设计名称从该小节中提取
const designStyleMarker = "Design Style & Motifs"

// boldLabelPattern 匹配 **Label**: 与 **Label:** 两种写法
var boldLabelPattern = regexp.MustCompile(`\*\*[^*\n]+?(?::\*\*|\*\*\s*:)`)

// Parse 将模型返回的 Markdown 方案解析为结构化提示词
// 任何输入都不会出错，结构不符合预期时降级为默认值
func Parse(raw string) domain.StructuredProposal {
	block, ok := utils.ExtractFencedBlock(raw)
	if !ok {
		klog.Warningf("[ProposalParser] 未找到代码块，按全文解析，长度: %d", len(block))
	}

	lines := nonEmptyLines(block)
	if len(lines) == 0 {
		klog.Warningf("[ProposalParser] 方案内容为空")
		return domain.StructuredProposal{DesignName: domain.DefaultDesignName}
	}

	negative := lines[len(lines)-1]
	mainLines := lines[:len(lines)-1]

	return domain.StructuredProposal{
		DesignName: extractDesignName(mainLines),
		Prompt:     strings.TrimSpace(cleanDescription(mainLines) + " --no " + negative),
	}
}

func nonEmptyLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func cleanDescription(lines []string) string {
	text := strings.Join(lines, " ")
	text = boldLabelPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "—", " ")
	return strings.Join(strings.Fields(text), " ")
}

func extractDesignName(lines []string) string {
	for _, line := range lines {
		if !strings.Contains(line, designStyleMarker) {
			continue
		}
		_, after, found := strings.Cut(line, ":")
		if !found {
			break
		}
		segment, _, _ := strings.Cut(after, ",")
		name := strings.Trim(segment, " *—\t")
		if name != "" {
			return name
		}
		break
	}
	return domain.DefaultDesignName
}
