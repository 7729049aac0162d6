package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/imagegen/internal/app"
	"github.com/doeshing/imagegen/internal/application/generate"
	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/infrastructure/cli/helpers"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand(container *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate an image from a text prompt",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.RunE = AttachGenerate(cmd, container)
	return cmd
}

type generateOptions struct {
	aspect string
	out    string
	copy   bool
}

// AttachGenerate registers the generation flags on cmd and returns the
// handler that runs one generation with them. The root command shares it for
// the bare-prompt form.
func AttachGenerate(cmd *cobra.Command, container *app.Container) func(*cobra.Command, []string) error {
	opts := &generateOptions{}
	cmd.Flags().StringVarP(&opts.aspect, "aspect", "r", "", "Aspect ratio: "+ratioUsage()+" (default from config)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the decoded image to this file or directory")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "Copy the image data URI to the clipboard")
	return func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, container, *opts, strings.Join(args, " "))
	}
}

func runGenerate(cmd *cobra.Command, container *app.Container, opts generateOptions, prompt string) error {
	if container.GenerateService == nil {
		return fmt.Errorf(ErrGenerateUnavailable)
	}
	aspect := opts.aspect
	if aspect == "" {
		aspect = string(container.Config.AspectRatio())
	}
	if _, err := helpers.LoadedHistory(cmd.Context(), container); err != nil {
		return err
	}

	spinner := helpers.NewSpinner(os.Stderr, "Generating image...")
	spinner.Start()
	outcome, err := container.GenerateService.Run(cmd.Context(), prompt, aspect)
	spinner.Stop()
	if outcome.Result.ImageURL == "" {
		return err
	}

	RenderOutcome(cmd.OutOrStdout(), outcome)
	if opts.out != "" {
		path, size, saveErr := helpers.SaveDataURI(outcome.Result.ImageURL, prompt, opts.out)
		if saveErr != nil {
			return fmt.Errorf("failed to save image: %w", saveErr)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", path, humanize.Bytes(uint64(size)))
	}
	if opts.copy {
		helpers.CopyImageURL(cmd, container.Clipboard, outcome.Result.ImageURL)
	}
	return err
}

// RenderOutcome prints a generation result in a friendly, ASCII-only format.
func RenderOutcome(out io.Writer, outcome generate.Outcome) {
	result := outcome.Result
	if result.IsFallback() {
		fmt.Fprintln(out, "Placeholder image (generation unavailable)")
		fmt.Fprintf(out, "Reason: %s\n", domain.UserMessage(result.Reason))
	} else {
		fmt.Fprintln(out, "Image generated successfully!")
	}
	fmt.Fprintf(out, "Caption: %s\n", result.Prompt)
	fmt.Fprintf(out, "Aspect ratio: %s\n", result.AspectRatio.Label())
	fmt.Fprintf(out, "Type: %s, %s encoded\n", result.MimeType, humanize.Bytes(uint64(len(result.ImageURL))))
	if outcome.Record.ID != "" {
		fmt.Fprintf(out, "History id: %s\n", outcome.Record.ID)
	}
}

func ratioUsage() string {
	ratios := domain.AspectRatios()
	names := make([]string, len(ratios))
	for i, r := range ratios {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
