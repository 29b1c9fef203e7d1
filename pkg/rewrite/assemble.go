package rewrite

import "github.com/germanamz/quill/pkg/prompt"

// Request is one rewrite invocation as captured by the editor.
type Request struct {
	Text   string // Selected text.
	Prompt string // Optional instruction that replaces the configured prompt.
}

// Assemble builds the payload for req. The request's own prompt, when set,
// takes the place of the configured one. The text is passed through as is;
// content filtering is left to the model API.
func Assemble(cfg EffectiveConfig, req Request) prompt.Payload {
	instruction := cfg.Prompt
	if req.Prompt != "" {
		instruction = req.Prompt
	}

	return prompt.Build(instruction, cfg.Examples, req.Text)
}
