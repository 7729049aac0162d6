package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/imagegen/internal/app"
	"github.com/doeshing/imagegen/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The returned container must be
// closed by the caller once the command has run.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, nil, err
	}

	root := &cobra.Command{
		Use:           "imagegen [prompt]",
		Short:         "imagegen - text-to-image from the terminal",
		Long:          "imagegen turns a text prompt into an image with Gemini and keeps a local history. Without a credential it produces themed SVG placeholders.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	generate := commands.AttachGenerate(root, container)
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return generate(cmd, args)
	}

	// Parsed early by main; declared here so cobra accepts it.
	var debug bool
	root.PersistentFlags().BoolVar(&debug, "debug", opts.Verbose, "Enable verbose logging")

	root.AddCommand(
		commands.NewGenerateCommand(container),
		commands.NewBatchCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(container),
	)
	return root, container, nil
}
