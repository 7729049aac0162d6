package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/imagegen/internal/app"
	"github.com/doeshing/imagegen/internal/application/generate"
	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/infrastructure/cli/helpers"
)

// NewBatchCommand creates the batch command
func NewBatchCommand(container *app.Container) *cobra.Command {
	var (
		file        string
		aspect      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch [prompt...]",
		Short: "Generate several images concurrently",
		Long:  "Each argument, or each non-empty line of --file, is one prompt. A line may start with a ratio followed by '|', e.g. '16:9|a harbour at dusk'.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.GenerateService == nil {
				return fmt.Errorf(ErrGenerateUnavailable)
			}
			if aspect == "" {
				aspect = string(container.Config.AspectRatio())
			}
			if concurrency <= 0 {
				concurrency = container.Config.BatchLimit()
			}

			items, err := collectBatchItems(file, args, aspect)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no prompts given")
			}
			if _, err := helpers.LoadedHistory(cmd.Context(), container); err != nil {
				return err
			}

			spinner := helpers.NewSpinner(os.Stderr, fmt.Sprintf("Generating %d images...", len(items)))
			spinner.Start()
			outcomes := container.GenerateService.RunBatch(cmd.Context(), items, concurrency)
			spinner.Stop()

			return renderBatch(cmd.OutOrStdout(), outcomes)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read prompts from file, one per line ('-' for stdin)")
	cmd.Flags().StringVarP(&aspect, "aspect", "r", "", "Default aspect ratio for prompts without one")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Maximum requests in flight (default from config)")
	return cmd
}

func collectBatchItems(file string, args []string, aspect string) ([]generate.BatchItem, error) {
	var lines []string
	lines = append(lines, args...)
	if file != "" {
		fromFile, err := readPromptLines(file)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fromFile...)
	}

	items := make([]generate.BatchItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, parseBatchLine(line, aspect))
	}
	return items, nil
}

func readPromptLines(file string) ([]string, error) {
	var r io.Reader = os.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open prompt file %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// parseBatchLine splits an optional "<ratio> | <prompt>" prefix. The prefix
// only counts when it names a supported ratio.
func parseBatchLine(line, aspect string) generate.BatchItem {
	if prefix, prompt, ok := strings.Cut(line, "|"); ok {
		if ratio := domain.AspectRatio(strings.TrimSpace(prefix)); ratio.Valid() {
			return generate.BatchItem{Prompt: strings.TrimSpace(prompt), AspectRatio: string(ratio)}
		}
	}
	return generate.BatchItem{Prompt: line, AspectRatio: aspect}
}

func renderBatch(out io.Writer, outcomes []generate.BatchOutcome) error {
	failed, fallbacks := 0, 0
	for i, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
			fmt.Fprintf(out, "%d. FAILED  %s: %v\n", i+1, o.Item.Prompt, o.Err)
		case o.Result.IsFallback():
			fallbacks++
			fmt.Fprintf(out, "%d. PLACEHOLDER %s [%s] %s\n", i+1, o.Record.ID, o.Result.Reason.Kind, o.Item.Prompt)
		default:
			fmt.Fprintf(out, "%d. OK      %s %s\n", i+1, o.Record.ID, o.Item.Prompt)
		}
	}
	fmt.Fprintf(out, "%d generated, %d placeholders, %d failed\n", len(outcomes)-failed-fallbacks, fallbacks, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d prompts failed", failed, len(outcomes))
	}
	return nil
}
