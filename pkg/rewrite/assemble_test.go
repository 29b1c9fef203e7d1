package rewrite_test

import (
	"testing"

	"github.com/germanamz/quill/pkg/prompt"
	"github.com/germanamz/quill/pkg/rewrite"
	"github.com/stretchr/testify/assert"
)

func TestAssemble_ExampleOrder(t *testing.T) {
	cfg := rewrite.EffectiveConfig{
		Prompt:   "tidy up",
		Examples: prompt.Examples{{Input: "a", Output: "b"}, {Input: "c", Output: "d"}},
	}

	p := rewrite.Assemble(cfg, rewrite.Request{Text: "real"})

	assert.Equal(t, []string{
		"instruction: tidy up",
		"input: a",
		"output: b",
		"input: c",
		"output: d",
		"input: real",
		"output: ",
	}, p.Strings())
}

func TestAssemble_RequestPromptOverridesConfig(t *testing.T) {
	cfg := rewrite.EffectiveConfig{Prompt: "configured"}

	p := rewrite.Assemble(cfg, rewrite.Request{Text: "x", Prompt: "one-off"})

	assert.Equal(t, prompt.Part{Label: prompt.Instruction, Text: "one-off"}, p[0])
}

func TestAssemble_EmptyRequestPromptFallsBack(t *testing.T) {
	cfg := rewrite.EffectiveConfig{Prompt: "configured"}

	p := rewrite.Assemble(cfg, rewrite.Request{Text: "x"})

	assert.Equal(t, "instruction: configured", p[0].String())
}

func TestAssemble_NoInstructionAtAll(t *testing.T) {
	p := rewrite.Assemble(rewrite.EffectiveConfig{}, rewrite.Request{Text: "x"})

	assert.Equal(t, []string{"input: x", "output: "}, p.Strings())
}
