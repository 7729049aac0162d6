package helpers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/imagegen/internal/ports"
)

// CopyImageURL puts a data URI on the clipboard. Failures are reported on
// stderr as warnings; the command still succeeds.
func CopyImageURL(cmd *cobra.Command, clip ports.Clipboard, imageURL string) {
	if clip == nil || !clip.Enabled() {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: clipboard not available, image URL not copied")
		return
	}
	if err := clip.Copy(imageURL); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: clipboard copy failed: %v\n", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Image URL copied to clipboard")
}
