package clipboard

import (
	"errors"
	"testing"
)

func fakeSystem(goos string, installed []string, env map[string]string) *System {
	return &System{
		goos: goos,
		lookPath: func(name string) (string, error) {
			for _, n := range installed {
				if n == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		},
		getenv: func(key string) string { return env[key] },
	}
}

func TestToolSelection(t *testing.T) {
	tests := []struct {
		name      string
		goos      string
		installed []string
		env       map[string]string
		want      string
	}{
		{name: "macOS", goos: "darwin", want: "pbcopy"},
		{name: "windows", goos: "windows", want: "clip"},
		{name: "x11 prefers xclip", goos: "linux", installed: []string{"xclip", "wl-copy"}, want: "xclip"},
		{name: "xsel fallback", goos: "linux", installed: []string{"xsel"}, want: "xsel"},
		{name: "wayland prefers wl-copy", goos: "linux", installed: []string{"xclip", "wl-copy"}, env: map[string]string{"WAYLAND_DISPLAY": "wayland-0"}, want: "wl-copy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fakeSystem(tt.goos, tt.installed, tt.env)
			got, err := s.tool()
			if err != nil {
				t.Fatalf("tool: %v", err)
			}
			if got.name != tt.want {
				t.Errorf("tool = %s, want %s", got.name, tt.want)
			}
			if !s.Enabled() {
				t.Error("Enabled() = false")
			}
		})
	}
}

func TestUnavailableClipboard(t *testing.T) {
	for _, s := range []*System{
		fakeSystem("linux", nil, nil),
		fakeSystem("plan9", nil, nil),
	} {
		if s.Enabled() {
			t.Errorf("%s: Enabled() = true", s.goos)
		}
		if err := s.Copy("data:image/png;base64,AAAA"); !errors.Is(err, ErrUnavailable) {
			t.Errorf("%s: Copy = %v, want ErrUnavailable", s.goos, err)
		}
	}
}
