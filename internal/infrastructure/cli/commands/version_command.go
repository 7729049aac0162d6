package commands

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/doeshing/imagegen/internal/app"
	"github.com/doeshing/imagegen/internal/version"
)

// NewVersionCommand reports build metadata and the active model.
func NewVersionCommand(container *app.Container) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show imagegen version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, resolvedVersion())
				return nil
			}
			writeBuildInfo(out, container)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

// resolvedVersion falls back to the module version when no ldflags were set,
// which is the case for `go install`.
func resolvedVersion() string {
	if version.Version != "dev" {
		return version.Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version.Version
}

func writeBuildInfo(out io.Writer, container *app.Container) {
	fmt.Fprintf(out, "imagegen %s (%s, %s/%s)\n", resolvedVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if version.Commit != "" {
		fmt.Fprintf(out, "commit:  %s\n", version.Commit)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(out, "built:   %s\n", version.BuildDate)
	}
	if container != nil && container.Generator != nil {
		mode := "live"
		if container.Generator.DemoMode() {
			mode = "demo"
		}
		fmt.Fprintf(out, "model:   %s (%s)\n", container.Generator.Model(), mode)
	}
}
