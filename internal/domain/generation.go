package domain

import (
	"strings"
)

// GenerationRequest is a validated prompt plus its target aspect ratio.
type GenerationRequest struct {
	Prompt      string
	AspectRatio AspectRatio
}

// NewGenerationRequest trims the prompt and normalizes the ratio.
// Empty or whitespace-only prompts are rejected before any dispatch.
func NewGenerationRequest(prompt string, aspectRatio string) (GenerationRequest, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return GenerationRequest{}, ErrEmptyPrompt
	}
	return GenerationRequest{
		Prompt:      prompt,
		AspectRatio: ParseAspectRatio(aspectRatio),
	}, nil
}

// ResultKind tags how an image artifact was produced.
type ResultKind string

const (
	// ResultGenerated is a raster image returned by the provider.
	ResultGenerated ResultKind = "generated"
	// ResultFallback is a locally synthesized placeholder.
	ResultFallback ResultKind = "fallback"
)

// GenerationResult is always displayable: ImageURL is never empty.
// Reason is nil exactly when Kind is ResultGenerated.
type GenerationResult struct {
	Kind        ResultKind
	ImageURL    string
	MimeType    string
	Prompt      string
	AspectRatio AspectRatio
	Reason      *GenerationError
	ModelText   []string
}

// IsFallback reports whether the artifact is a placeholder.
func (r GenerationResult) IsFallback() bool {
	return r.Kind == ResultFallback
}

// Generated builds a result carrying a real provider image.
func Generated(req GenerationRequest, imageURL, mimeType string, text []string) GenerationResult {
	return GenerationResult{
		Kind:        ResultGenerated,
		ImageURL:    imageURL,
		MimeType:    mimeType,
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
		ModelText:   text,
	}
}

// Fallback builds a placeholder result whose caption explains reason.
func Fallback(req GenerationRequest, imageURL string, reason *GenerationError) GenerationResult {
	return GenerationResult{
		Kind:        ResultFallback,
		ImageURL:    imageURL,
		MimeType:    PlaceholderMimeType,
		Prompt:      reason.Annotate(req.Prompt),
		AspectRatio: req.AspectRatio,
		Reason:      reason,
	}
}
