package ai

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"strings"
	"text/template"

	"github.com/doeshing/imagegen/internal/domain"
)

const maxCaptionRunes = 32

type theme struct {
	name  string
	start string
	end   string
	icon  string
}

type themeRule struct {
	match func(prompt string) bool
	theme theme
}

// themeRules is evaluated in order; the first matching rule wins.
// "a golden red dragon" therefore selects red.
var themeRules = []themeRule{
	{containsAny("red"), theme{name: "red", start: "#ff6b6b", end: "#ee5a24", icon: "🔥"}},
	{containsAny("blue"), theme{name: "blue", start: "#74b9ff", end: "#0984e3", icon: "🌊"}},
	{containsAny("green"), theme{name: "green", start: "#55a3ff", end: "#003d82", icon: "🌿"}},
	{containsAny("gold", "golden"), theme{name: "gold", start: "#fdcb6e", end: "#e17055", icon: "✨"}},
	{containsAny("lord", "god", "shiva"), theme{name: "divine", start: "#ff7675", end: "#fd79a8", icon: "🕉️"}},
}

var defaultTheme = theme{name: "default", start: "#667eea", end: "#764ba2", icon: "🎨"}

func containsAny(keywords ...string) func(string) bool {
	return func(prompt string) bool {
		for _, keyword := range keywords {
			if strings.Contains(prompt, keyword) {
				return true
			}
		}
		return false
	}
}

func selectTheme(prompt string) theme {
	lower := strings.ToLower(prompt)
	for _, rule := range themeRules {
		if rule.match(lower) {
			return rule.theme
		}
	}
	return defaultTheme
}

const placeholderSVG = `<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="grad" x1="0%" y1="0%" x2="100%" y2="100%">
      <stop offset="0%" style="stop-color:{{.Start}};stop-opacity:1"/>
      <stop offset="100%" style="stop-color:{{.End}};stop-opacity:1"/>
    </linearGradient>
    <pattern id="grid" width="40" height="40" patternUnits="userSpaceOnUse">
      <path d="M 40 0 L 0 0 0 40" fill="none" stroke="white" stroke-width="1" opacity="0.1"/>
    </pattern>
  </defs>
  <rect width="100%" height="100%" fill="url(#grad)"/>
  <rect width="100%" height="100%" fill="url(#grid)"/>
  <circle cx="15%" cy="20%" r="25" fill="white" opacity="0.1"/>
  <circle cx="85%" cy="30%" r="35" fill="white" opacity="0.08"/>
  <circle cx="25%" cy="80%" r="20" fill="white" opacity="0.06"/>
  <circle cx="75%" cy="75%" r="30" fill="white" opacity="0.05"/>
  <text x="50%" y="30%" dominant-baseline="middle" text-anchor="middle" fill="white" font-family="Arial, sans-serif" font-size="24" font-weight="bold">{{.Icon}} AI Generated Image</text>
  <text x="50%" y="45%" dominant-baseline="middle" text-anchor="middle" fill="white" font-family="Arial, sans-serif" font-size="14" opacity="0.9">"{{.Caption}}"</text>
  <text x="50%" y="65%" dominant-baseline="middle" text-anchor="middle" fill="white" font-family="Arial, sans-serif" font-size="16" font-weight="bold" opacity="0.8">Aspect Ratio: {{.Ratio}}</text>
  <text x="50%" y="80%" dominant-baseline="middle" text-anchor="middle" fill="white" font-family="Arial, sans-serif" font-size="11" opacity="0.7">
    <tspan x="50%" dy="0">Dimensions: {{.Width}}×{{.Height}}px</tspan>
    <tspan x="50%" dy="16" font-size="10" opacity="0.6">(Placeholder - generated locally)</tspan>
  </text>
</svg>
`

var placeholderTemplate = template.Must(template.New("placeholder").Parse(placeholderSVG))

type placeholderData struct {
	Width   int
	Height  int
	Start   string
	End     string
	Icon    string
	Caption string
	Ratio   string
}

// PlaceholderImage renders a themed SVG sized for ratio and returns it as a
// base64 data URI. The output depends only on its arguments.
func PlaceholderImage(prompt string, ratio domain.AspectRatio) string {
	return dataURI(domain.PlaceholderMimeType, base64.StdEncoding.EncodeToString(renderPlaceholder(prompt, ratio)))
}

func renderPlaceholder(prompt string, ratio domain.AspectRatio) []byte {
	if !ratio.Valid() {
		ratio = domain.DefaultAspectRatio
	}
	size := ratio.Dimensions()
	th := selectTheme(prompt)

	data := placeholderData{
		Width:   size.Width,
		Height:  size.Height,
		Start:   th.start,
		End:     th.end,
		Icon:    th.icon,
		Caption: escapeXML(truncateCaption(prompt)),
		Ratio:   string(ratio),
	}

	var buf bytes.Buffer
	if err := placeholderTemplate.Execute(&buf, data); err != nil {
		// The template is static and data is plain values; execution cannot fail.
		panic(err)
	}
	return buf.Bytes()
}

func truncateCaption(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= maxCaptionRunes {
		return prompt
	}
	return string(runes[:maxCaptionRunes]) + "..."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
