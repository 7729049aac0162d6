package domain

import "strings"

// AspectRatio is one of the supported width:height presentation modes.
type AspectRatio string

const (
	AspectSquare       AspectRatio = "1:1"
	AspectWidescreen   AspectRatio = "16:9"
	AspectVertical     AspectRatio = "9:16"
	AspectStandard     AspectRatio = "4:3"
	AspectStandardTall AspectRatio = "3:4"
)

// DefaultAspectRatio is used for empty or unrecognized input.
const DefaultAspectRatio = AspectSquare

// Dimensions are the pixel size used for a ratio's placeholder image.
type Dimensions struct {
	Width  int
	Height int
}

type aspectSpec struct {
	ratio     AspectRatio
	label     string
	directive string
	size      Dimensions
}

var aspectTable = []aspectSpec{
	{AspectSquare, "Square", "Square composition (1:1 aspect ratio)", Dimensions{512, 512}},
	{AspectWidescreen, "Landscape", "Widescreen landscape format (16:9 aspect ratio)", Dimensions{768, 432}},
	{AspectVertical, "Portrait", "Portrait vertical format (9:16 aspect ratio)", Dimensions{432, 768}},
	{AspectStandard, "Standard", "Standard landscape format (4:3 aspect ratio)", Dimensions{640, 480}},
	{AspectStandardTall, "Portrait", "Standard portrait format (3:4 aspect ratio)", Dimensions{480, 640}},
}

// AspectRatios lists the supported ratios in display order.
func AspectRatios() []AspectRatio {
	out := make([]AspectRatio, 0, len(aspectTable))
	for _, entry := range aspectTable {
		out = append(out, entry.ratio)
	}
	return out
}

// ParseAspectRatio maps user input onto a supported ratio.
// Unrecognized values fall back to 1:1.
func ParseAspectRatio(value string) AspectRatio {
	value = strings.TrimSpace(value)
	for _, entry := range aspectTable {
		if string(entry.ratio) == value {
			return entry.ratio
		}
	}
	return DefaultAspectRatio
}

// Valid reports whether r is one of the supported ratios.
func (r AspectRatio) Valid() bool {
	_, ok := r.lookup()
	return ok
}

// Dimensions returns the placeholder pixel size for r.
func (r AspectRatio) Dimensions() Dimensions {
	entry, _ := r.lookup()
	return entry.size
}

// Directive is the textual composition hint sent to the model, which has
// no structured ratio parameter.
func (r AspectRatio) Directive() string {
	entry, _ := r.lookup()
	return entry.directive
}

// Label is the human readable name shown in listings, e.g. "Landscape (16:9)".
func (r AspectRatio) Label() string {
	entry, _ := r.lookup()
	return entry.label + " (" + string(entry.ratio) + ")"
}

func (r AspectRatio) lookup() (aspectSpec, bool) {
	for _, entry := range aspectTable {
		if entry.ratio == r {
			return entry, true
		}
	}
	return aspectTable[0], false
}
