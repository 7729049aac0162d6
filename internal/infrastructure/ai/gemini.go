package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/pkg/logger"
	"github.com/doeshing/imagegen/internal/ports"
)

const maxErrorBodyBytes = 64 << 10

// GeminiClient calls the generateContent endpoint and degrades to a local
// placeholder whenever the call cannot produce an image.
type GeminiClient struct {
	settings   domain.GeminiSettings
	apiKey     string
	httpClient *http.Client
	logger     ports.Logger
}

// NewGeminiClient builds a client. An empty apiKey puts it in demo mode.
func NewGeminiClient(settings domain.GeminiSettings, apiKey string, client *http.Client, log ports.Logger) *GeminiClient {
	if client == nil {
		client = &http.Client{Timeout: domain.DefaultHTTPClientTimeout}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &GeminiClient{
		settings:   settings,
		apiKey:     apiKey,
		httpClient: client,
		logger:     log,
	}
}

// Model returns the configured model id.
func (c *GeminiClient) Model() string {
	return valueOrDefault(c.settings.ModelID, domain.DefaultGeminiModel)
}

// DemoMode reports whether no credential is configured.
func (c *GeminiClient) DemoMode() bool {
	return c.apiKey == ""
}

// Generate implements ports.ImageGenerator. It issues at most one request.
func (c *GeminiClient) Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	if !req.AspectRatio.Valid() {
		req.AspectRatio = domain.DefaultAspectRatio
	}
	if c.DemoMode() {
		return c.fallback(req, domain.NewConfigurationError(valueOrDefault(c.settings.AuthEnvVar, domain.DefaultAuthEnvVar)))
	}

	c.logger.Info("generating image", map[string]interface{}{
		"model":        c.Model(),
		"aspect_ratio": string(req.AspectRatio),
	})

	result, genErr := c.call(ctx, req)
	if genErr != nil {
		return c.fallback(req, genErr)
	}
	return result
}

func (c *GeminiClient) call(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, *domain.GenerationError) {
	body, err := buildRequest(c.settings, req)
	if err != nil {
		return domain.GenerationResult{}, &domain.GenerationError{Kind: domain.KindAPI, Message: err.Error(), Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL(), bytes.NewReader(body))
	if err != nil {
		return domain.GenerationResult{}, &domain.GenerationError{Kind: domain.KindAPI, Message: err.Error(), Err: err}
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.GenerationResult{}, domain.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		genErr := domain.NewStatusError(resp.StatusCode, http.StatusText(resp.StatusCode), readErrorMessage(resp.Body))
		c.logger.Error("gemini request failed", genErr, map[string]interface{}{"status": resp.StatusCode})
		return domain.GenerationResult{}, genErr
	}

	var decoded generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.GenerationResult{}, domain.NewDecodeError(fmt.Errorf("decode gemini response: %w", err))
	}

	image, texts := decoded.firstImage()
	for _, text := range texts {
		c.logger.Debug("gemini text part", map[string]interface{}{"text": text})
	}
	if image == nil {
		c.logger.Warn("gemini responded without image data", map[string]interface{}{"text_parts": len(texts)})
		return domain.GenerationResult{}, domain.NewNoImageError()
	}

	mimeType := valueOrDefault(image.MimeType, domain.DefaultImageMimeType)
	c.logger.Info("gemini image received", map[string]interface{}{
		"mime_type":   mimeType,
		"base64_size": len(image.Data),
	})
	return domain.Generated(req, dataURI(mimeType, image.Data), mimeType, texts), nil
}

func (c *GeminiClient) fallback(req domain.GenerationRequest, reason *domain.GenerationError) domain.GenerationResult {
	c.logger.Warn("using placeholder image", map[string]interface{}{
		"kind":   string(reason.Kind),
		"status": reason.Status,
	})
	return domain.Fallback(req, PlaceholderImage(req.Prompt, req.AspectRatio), reason)
}

func (c *GeminiClient) endpointURL() string {
	endpoint := strings.TrimRight(valueOrDefault(c.settings.Endpoint, domain.DefaultGeminiEndpoint), "/")
	return fmt.Sprintf("%s/models/%s:generateContent", endpoint, c.Model())
}

// readErrorMessage extracts error.message from a provider error body, if any.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var decoded apiErrorBody
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return ""
	}
	return strings.TrimSpace(decoded.Error.Message)
}

func dataURI(mimeType, base64Data string) string {
	return "data:" + mimeType + ";base64," + base64Data
}

var _ ports.ImageGenerator = (*GeminiClient)(nil)
