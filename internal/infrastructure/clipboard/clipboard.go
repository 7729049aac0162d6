package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/doeshing/imagegen/internal/ports"
)

// ErrUnavailable is returned when no clipboard utility can be used.
var ErrUnavailable = errors.New("clipboard unavailable")

type tool struct {
	name string
	args []string
}

// System implements ports.Clipboard by piping text into the platform's
// clipboard utility.
type System struct {
	goos     string
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// New builds a clipboard for the running platform.
func New() *System {
	return &System{goos: runtime.GOOS, lookPath: exec.LookPath, getenv: os.Getenv}
}

// Enabled reports whether a clipboard utility was found.
func (s *System) Enabled() bool {
	_, err := s.tool()
	return err == nil
}

// Copy writes text to the clipboard.
func (s *System) Copy(text string) error {
	t, err := s.tool()
	if err != nil {
		return err
	}
	cmd := exec.Command(t.name, t.args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		if msg := bytes.TrimSpace(out); len(msg) > 0 {
			return fmt.Errorf("%s: %w: %s", t.name, err, msg)
		}
		return fmt.Errorf("%s: %w", t.name, err)
	}
	return nil
}

func (s *System) tool() (tool, error) {
	switch s.goos {
	case "darwin":
		return tool{name: "pbcopy"}, nil
	case "windows":
		return tool{name: "clip"}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		candidates := []tool{
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
			{name: "wl-copy"},
		}
		if s.getenv("WAYLAND_DISPLAY") != "" {
			candidates = append([]tool{{name: "wl-copy"}}, candidates[:2]...)
		}
		for _, c := range candidates {
			if _, err := s.lookPath(c.name); err == nil {
				return c, nil
			}
		}
		return tool{}, fmt.Errorf("%w: install xclip, xsel or wl-copy", ErrUnavailable)
	}
	return tool{}, fmt.Errorf("%w on %s", ErrUnavailable, s.goos)
}

var _ ports.Clipboard = (*System)(nil)
