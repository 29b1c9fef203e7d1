// Package gemini provides a client for the Google Gemini generative-language API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/germanamz/quill/pkg/modeladapter"
	"github.com/germanamz/quill/pkg/modeladapter/usage"
	"github.com/germanamz/quill/pkg/prompt"
)

// DefaultBaseURL is the public Gemini API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// GenerateContent is the generation method a model must support to rewrite text.
const GenerateContent = "generateContent"

// BlockNone is the most permissive safety threshold.
const BlockNone = "BLOCK_NONE"

// HarmCategories lists the four adjustable safety categories. Every request
// sets all of them to BlockNone so rewrites of sensitive sample text are not
// filtered.
var HarmCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// ErrNoText is returned when the API answers without any text candidate.
var ErrNoText = errors.New("gemini: response contains no text")

// Adapter talks to the Gemini API with a single API key and model.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter configured for the Gemini API.
// The baseURL should be "https://generativelanguage.googleapis.com" (no trailing slash).
func New(baseURL, apiKey, model string) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	a := &Adapter{
		ModelAdapter: modeladapter.New(
			strings.TrimRight(baseURL, "/"),
			modeladapter.Auth{Key: apiKey, Header: "x-goog-api-key"},
			nil,
		),
	}
	a.Name = model

	return a
}

// Generate sends the payload to the configured model and returns the text of
// the first candidate.
func (a *Adapter) Generate(ctx context.Context, payload prompt.Payload) (string, error) {
	req := a.buildRequest(payload)
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(a.Name))

	var resp apiResponse
	if err := a.PostJSON(ctx, path, req, &resp); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	a.Usage.Add(usage.TokenCount{
		InputTokens:    resp.UsageMetadata.PromptTokenCount,
		OutputTokens:   resp.UsageMetadata.CandidatesTokenCount,
		ThinkingTokens: resp.UsageMetadata.ThoughtsTokenCount,
	})

	if br := resp.PromptFeedback.BlockReason; br != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", ErrNoText, br)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: empty candidates", ErrNoText)
	}

	cand := resp.Candidates[0]

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: finish reason %s", ErrNoText, cand.FinishReason)
	}

	return sb.String(), nil
}

// --- request types ---

type apiRequest struct {
	Contents       []apiContent    `json:"contents"`
	SafetySettings []safetySetting `json:"safetySettings"`
}

type apiContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text    string `json:"text"`
	Thought bool   `json:"thought,omitempty"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

// --- response types ---

type apiResponse struct {
	Candidates     []apiCandidate `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	UsageMetadata apiUsageMeta `json:"usageMetadata"`
}

type apiCandidate struct {
	Content      apiContent `json:"content"`
	FinishReason string     `json:"finishReason"`
}

type apiUsageMeta struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	ThoughtsTokenCount   int `json:"thoughtsTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// buildRequest places every payload part, in order, into a single user turn.
func (a *Adapter) buildRequest(payload prompt.Payload) apiRequest {
	parts := make([]apiPart, len(payload))
	for i, p := range payload {
		parts[i] = apiPart{Text: p.String()}
	}

	req := apiRequest{
		Contents:       []apiContent{{Role: "user", Parts: parts}},
		SafetySettings: make([]safetySetting, len(HarmCategories)),
	}

	for i, c := range HarmCategories {
		req.SafetySettings[i] = safetySetting{Category: c, Threshold: BlockNone}
	}

	return req
}
