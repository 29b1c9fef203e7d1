package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/germanamz/quill/pkg/providers/gemini"
	"github.com/germanamz/quill/pkg/rewrite"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Service bundles the operations the rewrite tools call into.
type Service struct {
	Orchestrator *rewrite.Orchestrator
	Catalog      *rewrite.Catalog
	Selector     *rewrite.Selector
	Credentials  rewrite.CredentialSource
}

type rewriteInput struct {
	Text   string `json:"text"`
	Prompt string `json:"prompt"`
}

type listInput struct{}

type selectInput struct {
	Model string `json:"model"`
}

type tool struct {
	def     *mcp.Tool
	handler mcp.ToolHandler
}

func (svc Service) tools() []tool {
	return []tool{
		{
			def: &mcp.Tool{
				Name:        "rewrite_text",
				Description: "Rewrite text with the configured Gemini model. Returns only the rewritten text.",
				InputSchema: json.RawMessage(`{
					"type": "object",
					"properties": {
						"text": {"type": "string", "description": "The selected text to rewrite."},
						"prompt": {"type": "string", "description": "Optional instruction that replaces the configured prompt for this call."}
					},
					"required": ["text"]
				}`),
			},
			handler: handle(svc.rewriteText),
		},
		{
			def: &mcp.Tool{
				Name:        "list_models",
				Description: "List the Gemini models that can rewrite text, one per line.",
				InputSchema: json.RawMessage(`{"type": "object"}`),
			},
			handler: handle(svc.listModels),
		},
		{
			def: &mcp.Tool{
				Name:        "select_model",
				Description: "Use the given model for all following rewrites and save it in the global settings.",
				InputSchema: json.RawMessage(`{
					"type": "object",
					"properties": {
						"model": {"type": "string", "description": "Model name, with or without the models/ prefix."}
					},
					"required": ["model"]
				}`),
			},
			handler: handle(svc.selectModel),
		},
	}
}

// handle decodes the call arguments into In and reports failures as tool
// errors, so the client sees the message instead of a protocol error.
func handle[In any](fn func(context.Context, In) (string, error)) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in In
		if args := req.Params.Arguments; len(args) > 0 {
			if err := json.Unmarshal(args, &in); err != nil {
				return toolResult(fmt.Sprintf("%s: invalid arguments: %v", req.Params.Name, err), true), nil
			}
		}

		text, err := fn(ctx, in)
		if err != nil {
			return toolResult(err.Error(), true), nil
		}

		return toolResult(text, false), nil
	}
}

func toolResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

func (svc Service) rewriteText(ctx context.Context, in rewriteInput) (string, error) {
	text, err := svc.Orchestrator.Rewrite(ctx, rewrite.Request{Text: in.Text, Prompt: in.Prompt}, nil)
	if errors.Is(err, rewrite.ErrDeprecatedModel) {
		return "", fmt.Errorf("%w; call list_models, then select_model with one of the listed names", err)
	}

	return text, err
}

func (svc Service) listModels(ctx context.Context, _ listInput) (string, error) {
	key, err := svc.Credentials.APIKey(ctx)
	if err != nil {
		return "", &rewrite.Error{Kind: rewrite.KindMissingCredential, Err: err}
	}
	if key == "" {
		return "", rewrite.ErrMissingCredential
	}

	names, err := svc.Catalog.ListRewriteCapable(ctx, key)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", rewrite.ErrEmptyCatalog
	}

	return strings.Join(names, "\n"), nil
}

func (svc Service) selectModel(ctx context.Context, in selectInput) (string, error) {
	name := strings.TrimPrefix(strings.TrimSpace(in.Model), gemini.ModelPrefix)
	if name == "" {
		return "", errors.New("select_model: model is required")
	}

	out := svc.Selector.Apply(ctx, name)

	return fmt.Sprintf("model set to %s (%s)", name, out), nil
}
