package ai

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/doeshing/imagegen/internal/domain"
)

var safetyCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

var responseModalities = []string{"TEXT", "IMAGE"}

const promptTemplate = `Generate a high-quality, detailed image: {{.Prompt}}.

Style specifications:
- High resolution and artistic quality
- Rich colors and fine details
- {{.Directive}}
- Professional and visually appealing
- Vibrant and engaging

Please generate this image with attention to artistic detail and composition.`

var engineeredPrompt = template.Must(template.New("prompt").Parse(promptTemplate))

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature        float64  `json:"temperature"`
	TopK               int      `json:"topK"`
	TopP               float64  `json:"topP"`
	MaxOutputTokens    int      `json:"maxOutputTokens"`
	ResponseModalities []string `json:"responseModalities"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      *content `json:"content"`
		FinishReason string   `json:"finishReason,omitempty"`
	} `json:"candidates"`
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// renderPrompt embeds the ratio directive since the model takes no ratio parameter.
func renderPrompt(req domain.GenerationRequest) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Prompt    string
		Directive string
	}{
		Prompt:    strings.TrimSpace(req.Prompt),
		Directive: req.AspectRatio.Directive(),
	}
	if err := engineeredPrompt.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildRequest(settings domain.GeminiSettings, req domain.GenerationRequest) ([]byte, error) {
	text, err := renderPrompt(req)
	if err != nil {
		return nil, err
	}

	threshold := valueOrDefault(settings.SafetyThreshold, domain.DefaultSafetyThreshold)
	safety := make([]safetySetting, 0, len(safetyCategories))
	for _, category := range safetyCategories {
		safety = append(safety, safetySetting{Category: category, Threshold: threshold})
	}

	body := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: generationConfig{
			Temperature:        valueOrDefaultFloat(settings.Temperature, domain.DefaultTemperature),
			TopK:               valueOrDefaultInt(settings.TopK, domain.DefaultTopK),
			TopP:               valueOrDefaultFloat(settings.TopP, domain.DefaultTopP),
			MaxOutputTokens:    valueOrDefaultInt(settings.MaxOutputTokens, domain.DefaultMaxOutputTokens),
			ResponseModalities: responseModalities,
		},
		SafetySettings: safety,
	}
	return json.Marshal(body)
}

// firstImage scans the first candidate's parts. The first part carrying inline
// data wins; text parts are collected for logging only.
func (r generateContentResponse) firstImage() (*inlineData, []string) {
	if len(r.Candidates) == 0 || r.Candidates[0].Content == nil {
		return nil, nil
	}
	var texts []string
	for _, p := range r.Candidates[0].Content.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
		if p.InlineData != nil && p.InlineData.Data != "" {
			return p.InlineData, texts
		}
	}
	return nil, texts
}
