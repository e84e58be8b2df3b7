package proposal

import (
	"strings"
	"testing"

	"github.com/ringoforme/sock-whisperer-design-lab/internal/domain"
	"github.com/stretchr/testify/assert"
)

const sampleResponse = "Here is your prompt:\n" +
	"```markdown\n" +
	"**Subject & Layout**: Realistic vector-style crew sock, flat-lay view.\n" +
	"\n" +
	"**Background**: solid white.\n" +
	"**Design Zones**: Upper — navy stripes; Foot — plain knit.\n" +
	"**Design Style & Motifs**: Retro geometric, bold lines\n" +
	"**Color Scheme (Pantone)**: 19-4052 Classic Blue\n" +
	"low-res, blurry, watermark\n" +
	"```\n" +
	"Let me know if you need changes."

func TestParseStructuredResponse(t *testing.T) {
	got := Parse(sampleResponse)

	assert.Equal(t, "Retro geometric", got.DesignName)
	assert.Equal(t,
		"Realistic vector-style crew sock, flat-lay view. solid white. Upper navy stripes; Foot plain knit. Retro geometric, bold lines 19-4052 Classic Blue --no low-res, blurry, watermark",
		got.Prompt)
}

func TestParsePromptEndsWithNegativeClause(t *testing.T) {
	inputs := []string{
		sampleResponse,
		"```\nfirst line\nsecond line\nneg words\n```",
		"no fence at all\nstill text\nneg",
		"```md\nonly line\n```",
	}
	for _, input := range inputs {
		got := Parse(input)
		assert.True(t, strings.Contains(got.Prompt, "--no "), "prompt %q", got.Prompt)
		assert.NotContains(t, got.Prompt, "**")
	}
}

func TestParseWithoutFencedBlock(t *testing.T) {
	got := Parse("  Design Style & Motifs: Botanical, vines\nblurry  ")

	assert.Equal(t, "Botanical", got.DesignName)
	assert.Equal(t, "Design Style & Motifs: Botanical, vines --no blurry", got.Prompt)
}

func TestParseSingleLineBlock(t *testing.T) {
	got := Parse("```\nlow-res, blurry\n```")

	assert.Equal(t, domain.DefaultDesignName, got.DesignName)
	assert.Equal(t, "--no low-res, blurry", got.Prompt)
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "```\n```"} {
		got := Parse(input)
		assert.Equal(t, domain.DefaultDesignName, got.DesignName)
		assert.Empty(t, got.Prompt)
	}
}

func TestParseMalformedBoldLabels(t *testing.T) {
	input := "```\n**Broken label: stripes\n**Design Style & Motifs** no colon here\n**Cuff:** solid red\nneg\n```"

	assert.NotPanics(t, func() { Parse(input) })
	got := Parse(input)
	assert.Equal(t, domain.DefaultDesignName, got.DesignName)
	assert.Contains(t, got.Prompt, "**Broken label: stripes")
	assert.Contains(t, got.Prompt, "solid red --no neg")
	assert.NotContains(t, got.Prompt, "**Cuff:**")
}

func TestParseDesignNameBoldColonInside(t *testing.T) {
	got := Parse("```\n**Design Style & Motifs:** Art Deco, fans — arches\nneg\n```")

	assert.Equal(t, "Art Deco", got.DesignName)
	assert.Equal(t, "Art Deco, fans arches --no neg", got.Prompt)
}

func TestParseDesignNameFallsBackWhenEmpty(t *testing.T) {
	got := Parse("```\n**Design Style & Motifs**: , stripes\nneg\n```")

	assert.Equal(t, domain.DefaultDesignName, got.DesignName)
}

func TestParseMultipleFencedBlocksUsesFirst(t *testing.T) {
	got := Parse("```\nfirst body\nfirst neg\n```\n```\nsecond body\nsecond neg\n```")

	assert.Equal(t, "first body --no first neg", got.Prompt)
}

func TestParseDefaultNegativePromptIsAppendedVerbatim(t *testing.T) {
	raw := "```markdown\n" +
		"**Subject & Layout**: Realistic crew sock, flat-lay view.\n" +
		"**Design Style & Motifs**: Botanical, leafy vines\n" +
		domain.DefaultNegativePrompt + "\n" +
		"```"

	got := Parse(raw)
	assert.Equal(t, "Botanical", got.DesignName)
	assert.True(t, strings.HasSuffix(got.Prompt, "--no "+domain.DefaultNegativePrompt), got.Prompt)
}

func TestParseShortThreeLineBlock(t *testing.T) {
	raw := "```\n" +
		"**Subject & Layout**: a red sock\n" +
		"**Design Style & Motifs**: cute, pixel art\n" +
		"low-res, blurry\n" +
		"```"

	got := Parse(raw)
	assert.Equal(t, "cute", got.DesignName)
	assert.True(t, strings.HasSuffix(got.Prompt, "--no low-res, blurry"), got.Prompt)
	assert.Equal(t, "a red sock cute, pixel art --no low-res, blurry", got.Prompt)
}
