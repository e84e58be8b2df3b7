package utils

import (
	"strings"
	"testing"

	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
)

// TestExtractFencedBlockMarkdownTag 验证带 markdown 标识的代码块
func TestExtractFencedBlockMarkdownTag(t *testing.T) {
	content := "Here you go:\n```markdown\n**Background**: solid white.\nlow-res\n```\nThanks"
	extracted, ok := ExtractFencedBlock(content)
	if !ok {
		t.Fatalf("expected fenced block to be found")
	}
	if extracted != "**Background**: solid white.\nlow-res" {
		t.Fatalf("unexpected block content: %q", extracted)
	}
}

func TestExtractFencedBlockUntagged(t *testing.T) {
	extracted, ok := ExtractFencedBlock("```\nline one\nline two\n```")
	if !ok {
		t.Fatalf("expected fenced block to be found")
	}
	if extracted != "line one\nline two" {
		t.Fatalf("unexpected block content: %q", extracted)
	}
}

func TestExtractFencedBlockOtherTag(t *testing.T) {
	extracted, ok := ExtractFencedBlock("```md\r\nfirst\r\nlast\r\n```")
	if !ok {
		t.Fatalf("expected fenced block to be found")
	}
	if !strings.HasPrefix(extracted, "first") || !strings.HasSuffix(extracted, "last") {
		t.Fatalf("unexpected block content: %q", extracted)
	}
}

// TestExtractFencedBlockFirstMatch 多个代码块时只取第一个
func TestExtractFencedBlockFirstMatch(t *testing.T) {
	extracted, _ := ExtractFencedBlock("```\nfirst\n```\n```\nsecond\n```")
	if extracted != "first" {
		t.Fatalf("expected first block, got %q", extracted)
	}
}

func TestExtractFencedBlockWithoutFence(t *testing.T) {
	extracted, ok := ExtractFencedBlock("  plain text answer \n")
	if ok {
		t.Fatalf("expected no fenced block")
	}
	if extracted != "plain text answer" {
		t.Fatalf("unexpected fallback content: %q", extracted)
	}
}

func TestToJSON(t *testing.T) {
	if got := ToJSON(map[string]int{"a": 1}); got != `{"a":1}` {
		t.Fatalf("unexpected json: %s", got)
	}
}

// TestToJSONGeneratedDesigns 验证设计结果日志中失败项带 error，成功项省略 error
func TestToJSONGeneratedDesigns(t *testing.T) {
	designs := []domain.GeneratedDesign{
		{URL: "https://img.example/1.png", Prompt: "p --no n", DesignName: "Retro"},
		{URL: domain.PlaceholderImageURL, Prompt: "q --no n", DesignName: domain.FailedDesignName, Error: "timeout"},
	}
	got := ToJSON(designs)
	want := `[{"url":"https://img.example/1.png","prompt":"p --no n","design_name":"Retro"},` +
		`{"url":"` + domain.PlaceholderImageURL + `","prompt":"q --no n","design_name":"Generation Failed","error":"timeout"}]`
	if got != want {
		t.Fatalf("unexpected json:\n got: %s\nwant: %s", got, want)
	}
}

func TestToJSONUnsupportedValue(t *testing.T) {
	if got := ToJSON(make(chan int)); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
