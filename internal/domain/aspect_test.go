package domain_test

import (
	"testing"

	"github.com/doeshing/imagegen/internal/domain"
)

func TestParseAspectRatio(t *testing.T) {
	tests := []struct {
		input string
		want  domain.AspectRatio
	}{
		{"1:1", domain.AspectSquare},
		{"16:9", domain.AspectWidescreen},
		{" 9:16 ", domain.AspectVertical},
		{"4:3", domain.AspectStandard},
		{"3:4", domain.AspectStandardTall},
		{"21:9", domain.AspectSquare},
		{"", domain.AspectSquare},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := domain.ParseAspectRatio(tt.input); got != tt.want {
				t.Errorf("ParseAspectRatio(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestAspectRatioDimensions(t *testing.T) {
	want := map[domain.AspectRatio]domain.Dimensions{
		domain.AspectSquare:       {Width: 512, Height: 512},
		domain.AspectWidescreen:   {Width: 768, Height: 432},
		domain.AspectVertical:     {Width: 432, Height: 768},
		domain.AspectStandard:     {Width: 640, Height: 480},
		domain.AspectStandardTall: {Width: 480, Height: 640},
	}

	ratios := domain.AspectRatios()
	if len(ratios) != len(want) {
		t.Fatalf("got %d ratios, want %d", len(ratios), len(want))
	}
	for _, r := range ratios {
		if got := r.Dimensions(); got != want[r] {
			t.Errorf("%s dimensions = %+v, want %+v", r, got, want[r])
		}
		if r.Directive() == "" {
			t.Errorf("%s has no directive", r)
		}
	}
}

func TestNewGenerationRequest(t *testing.T) {
	req, err := domain.NewGenerationRequest("  a red fox  ", "bogus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Prompt != "a red fox" {
		t.Errorf("prompt = %q, want trimmed", req.Prompt)
	}
	if req.AspectRatio != domain.AspectSquare {
		t.Errorf("ratio = %s, want 1:1", req.AspectRatio)
	}

	if _, err := domain.NewGenerationRequest(" \t\n", "1:1"); err != domain.ErrEmptyPrompt {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}
}
