package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/doeshing/imagegen/internal/app"
	"github.com/doeshing/imagegen/internal/application/doctor"
	"github.com/doeshing/imagegen/internal/application/generate"
	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/infrastructure/ai"
	configinfra "github.com/doeshing/imagegen/internal/infrastructure/config"
	"github.com/doeshing/imagegen/internal/infrastructure/history"
	"github.com/doeshing/imagegen/internal/pkg/logger"
)

func testContainer(t *testing.T) *app.Container {
	t.Helper()
	dir := t.TempDir()
	cfg := configinfra.DefaultConfig()
	store := history.NewJSONStore(filepath.Join(dir, "generatedImages.json"), nil)
	generator := ai.NewGeminiClient(cfg.Gemini, "", nil, nil)
	return &app.Container{
		Config:       cfg,
		ConfigLoader: configinfra.NewFileLoader(filepath.Join(dir, "config.yaml")),
		Generator:    generator,
		HistoryStore: store,
		GenerateService: &generate.Service{
			Generator: generator,
			History:   store,
		},
		Logger: logger.NewNop(),
	}
}

func run(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateInDemoModeRecordsPlaceholder(t *testing.T) {
	container := testContainer(t)
	outDir := t.TempDir()

	out, err := run(t, NewGenerateCommand(container), "", "--aspect", "16:9", "--out", outDir, "a", "peaceful", "forest")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Placeholder image") || !strings.Contains(out, "Demo Mode - Gemini API key is not configured") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "imagegen-a_peaceful_forest.svg")); err != nil {
		t.Errorf("placeholder not saved: %v", err)
	}

	records, err := container.HistoryStore.List("forest")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || !records[0].Fallback || records[0].AspectRatio != domain.AspectWidescreen {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestHistoryLifecycle(t *testing.T) {
	container := testContainer(t)
	for _, prompt := range []string{"a peaceful forest", "a city skyline", "Forest fire"} {
		if _, err := run(t, NewGenerateCommand(container), "", prompt); err != nil {
			t.Fatalf("generate %q: %v", prompt, err)
		}
	}

	out, err := run(t, NewHistoryCommand(container), "", "list", "--search", "FOREST")
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Fatalf("filtered list has %d lines:\n%s", lines, out)
	}
	if strings.Contains(out, "skyline") {
		t.Errorf("filter leaked non-matching record:\n%s", out)
	}

	records, _ := container.HistoryStore.List("")
	if _, err := run(t, NewHistoryCommand(container), "", "remove", records[0].ID); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, NewHistoryCommand(container), "", "remove", "missing-id"); err != nil {
		t.Fatalf("removing unknown id should succeed: %v", err)
	}
	remaining, _ := container.HistoryStore.List("")
	if diff := cmp.Diff(records[1:], remaining); diff != "" {
		t.Fatalf("after remove (-want +got):\n%s", diff)
	}

	out, err = run(t, NewHistoryCommand(container), "n\n", "clear")
	if err != nil || !strings.Contains(out, MsgClearCancelled) {
		t.Fatalf("declined clear: %v\n%s", err, out)
	}
	if _, err := run(t, NewHistoryCommand(container), "", "clear", "--yes"); err != nil {
		t.Fatal(err)
	}
	out, _ = run(t, NewHistoryCommand(container), "", "list")
	if !strings.Contains(out, MsgNoHistoryRecorded) {
		t.Fatalf("list after clear:\n%s", out)
	}
}

func TestHistorySaveWritesImage(t *testing.T) {
	container := testContainer(t)
	if _, err := run(t, NewGenerateCommand(container), "", "a red fox"); err != nil {
		t.Fatal(err)
	}
	records, _ := container.HistoryStore.List("")
	dest := filepath.Join(t.TempDir(), "fox.svg")

	if _, err := run(t, NewHistoryCommand(container), "", "save", records[0].ID, dest); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Fatalf("saved file is not the placeholder SVG: %.40q", data)
	}

	if _, err := run(t, NewHistoryCommand(container), "", "save", "nope", dest); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestConfigSetAndDiff(t *testing.T) {
	container := testContainer(t)

	out, err := run(t, NewConfigCommand(container), "", "diff")
	if err != nil || !strings.Contains(out, MsgNoDifferencesFromDefault) {
		t.Fatalf("diff on defaults: %v\n%s", err, out)
	}

	if _, err := run(t, NewConfigCommand(container), "", "set", "preferences.default_aspect_ratio", "9:16"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := run(t, NewConfigCommand(container), "", "set", "history.backend", "redis"); err == nil {
		t.Fatal("expected invalid backend to be rejected")
	}
	if _, err := run(t, NewConfigCommand(container), "", "set", "gemini.temperature", "0"); err != nil {
		t.Fatalf("set temperature: %v", err)
	}
	if container.Config.Gemini.Temperature == nil || *container.Config.Gemini.Temperature != 0 {
		t.Errorf("temperature = %v, want explicit 0", container.Config.Gemini.Temperature)
	}
	if _, err := os.Stat(container.ConfigLoader.BackupPath()); err != nil {
		t.Errorf("second save kept no backup: %v", err)
	}

	out, err = run(t, NewConfigCommand(container), "", "get", "preferences.default_aspect_ratio")
	if err != nil || strings.TrimSpace(out) != "9:16" {
		t.Fatalf("get = %q, %v", out, err)
	}
	out, _ = run(t, NewConfigCommand(container), "", "diff")
	if !strings.Contains(out, "9:16") {
		t.Errorf("diff does not mention change:\n%s", out)
	}
}

func TestParseBatchLine(t *testing.T) {
	tests := []struct {
		line string
		want generate.BatchItem
	}{
		{"a harbour at dusk", generate.BatchItem{Prompt: "a harbour at dusk", AspectRatio: "1:1"}},
		{"16:9 | a harbour at dusk", generate.BatchItem{Prompt: "a harbour at dusk", AspectRatio: "16:9"}},
		{"pipes | are fine", generate.BatchItem{Prompt: "pipes | are fine", AspectRatio: "1:1"}},
		{"a sign reading 10:30 | closed", generate.BatchItem{Prompt: "a sign reading 10:30 | closed", AspectRatio: "1:1"}},
		{"5:4 | unsupported ratio", generate.BatchItem{Prompt: "5:4 | unsupported ratio", AspectRatio: "1:1"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseBatchLine(tt.line, "1:1")); diff != "" {
			t.Errorf("parseBatchLine(%q) (-want +got):\n%s", tt.line, diff)
		}
	}
}

func TestBatchReadsPromptFile(t *testing.T) {
	container := testContainer(t)
	file := filepath.Join(t.TempDir(), "prompts.txt")
	content := "# comment\na blue lake\n\n4:3|a golden crown\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, NewBatchCommand(container), "", "--file", file, "--concurrency", "2")
	if err != nil {
		t.Fatalf("batch: %v\n%s", err, out)
	}
	if !strings.Contains(out, "0 generated, 2 placeholders, 0 failed") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	records, _ := container.HistoryStore.List("")
	if len(records) != 2 {
		t.Fatalf("stored %d records", len(records))
	}
}

func TestDoctorReportsDemoModeAsDegraded(t *testing.T) {
	container := testContainer(t)
	container.DoctorService = &doctor.Service{
		ConfigProvider: container.ConfigLoader,
		HistoryStore:   container.HistoryStore,
	}

	out, err := run(t, NewDoctorCommand(container), "")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[!!] API key") || !strings.Contains(out, "DEGRADED: 3 ok, 1 warnings, 0 failed") {
		t.Errorf("unexpected report:\n%s", out)
	}
}

func TestVersionShowsModelAndMode(t *testing.T) {
	container := testContainer(t)

	out, err := run(t, NewVersionCommand(container), "")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "model:   "+domain.DefaultGeminiModel+" (demo)") {
		t.Errorf("unexpected version output:\n%s", out)
	}

	out, _ = run(t, NewVersionCommand(container), "", "--short")
	if strings.Count(out, "\n") != 1 {
		t.Errorf("--short printed %q", out)
	}
}

type fakeClipboard struct {
	enabled bool
	err     error
	copied  []string
}

func (f *fakeClipboard) Enabled() bool { return f.enabled }

func (f *fakeClipboard) Copy(text string) error {
	if f.err != nil {
		return f.err
	}
	f.copied = append(f.copied, text)
	return nil
}

func TestGenerateCopyPutsImageOnClipboard(t *testing.T) {
	container := testContainer(t)
	clip := &fakeClipboard{enabled: true}
	container.Clipboard = clip

	out, err := run(t, NewGenerateCommand(container), "", "--copy", "a lighthouse")
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	if len(clip.copied) != 1 || !strings.HasPrefix(clip.copied[0], "data:image/svg+xml;base64,") {
		t.Fatalf("copied %v", clip.copied)
	}
	if !strings.Contains(out, "copied to clipboard") {
		t.Errorf("no confirmation:\n%s", out)
	}
}

func TestHistoryShare(t *testing.T) {
	tests := []struct {
		name     string
		clip     *fakeClipboard
		wantOut  string
		wantCopy bool
	}{
		{name: "copies record url", clip: &fakeClipboard{enabled: true}, wantOut: "copied to clipboard", wantCopy: true},
		{name: "unsupported clipboard warns", clip: &fakeClipboard{}, wantOut: "warning: clipboard not available"},
		{name: "copy failure warns", clip: &fakeClipboard{enabled: true, err: errors.New("xclip exited 1")}, wantOut: "warning: clipboard copy failed: xclip exited 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container := testContainer(t)
			container.Clipboard = tt.clip
			if _, err := run(t, NewGenerateCommand(container), "", "a red fox"); err != nil {
				t.Fatal(err)
			}
			records, _ := container.HistoryStore.List("")

			out, err := run(t, NewHistoryCommand(container), "", "share", records[0].ID)
			if err != nil {
				t.Fatalf("share should not fail: %v", err)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output %q does not contain %q", out, tt.wantOut)
			}
			if tt.wantCopy && (len(tt.clip.copied) != 1 || tt.clip.copied[0] != records[0].ImageURL) {
				t.Errorf("copied %v, want record image url", tt.clip.copied)
			}
		})
	}

	container := testContainer(t)
	if _, err := run(t, NewHistoryCommand(container), "", "share", "missing-id"); err == nil {
		t.Error("expected unknown id to fail")
	}
}

func TestBarePromptAcceptsGenerateFlags(t *testing.T) {
	container := testContainer(t)
	clip := &fakeClipboard{enabled: true}
	container.Clipboard = clip
	outDir := t.TempDir()

	root := &cobra.Command{Use: "imagegen", Args: cobra.ArbitraryArgs}
	generate := AttachGenerate(root, container)
	root.RunE = generate
	root.AddCommand(NewHistoryCommand(container))

	out, err := run(t, root, "", "a quiet harbour", "-r", "16:9", "-o", outDir, "-c")
	if err != nil {
		t.Fatalf("bare prompt: %v\n%s", err, out)
	}
	records, _ := container.HistoryStore.List("")
	if len(records) != 1 || records[0].AspectRatio != domain.AspectWidescreen {
		t.Fatalf("unexpected records %+v", records)
	}
	if _, err := os.Stat(filepath.Join(outDir, "imagegen-a_quiet_harbour.svg")); err != nil {
		t.Errorf("image not saved: %v", err)
	}
	if len(clip.copied) != 1 {
		t.Errorf("clipboard copies = %d, want 1", len(clip.copied))
	}
}
