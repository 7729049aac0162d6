package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/imagegen/internal/app"
	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/infrastructure/cli/helpers"
	"github.com/doeshing/imagegen/internal/infrastructure/history"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse generated images",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryRemoveCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistorySaveCommand(container),
		newHistoryShareCommand(container),
	)

	return historyCmd
}

func newHistoryListCommand(container *app.Container) *cobra.Command {
	var (
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List history entries, newest last",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := helpers.LoadedHistory(cmd.Context(), container)
			if err != nil {
				return err
			}
			records, err := store.List(search)
			if err != nil {
				return fmt.Errorf("failed to retrieve history records: %w", err)
			}
			listHistoryEntries(cmd.OutOrStdout(), records, limit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show entries whose content contains this text (case-insensitive)")
	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show, 0 for all")
	return cmd
}

func newHistoryRemoveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove one entry by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := helpers.LoadedHistory(cmd.Context(), container)
			if err != nil {
				return err
			}
			if err := store.Remove(args[0]); err != nil {
				return fmt.Errorf("failed to remove %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := helpers.LoadedHistory(cmd.Context(), container)
			if err != nil {
				return err
			}
			if !yes && !helpers.PromptForYesNo(cmd.OutOrStdout(), bufio.NewReader(cmd.InOrStdin()), "Are you sure you want to clear all images?", false) {
				fmt.Fprintln(cmd.OutOrStdout(), MsgClearCancelled)
				return nil
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := helpers.LoadedHistory(cmd.Context(), container)
			if err != nil {
				return err
			}
			n, err := history.ExportJSONL(store, args[0])
			if err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", n, args[0])
			return nil
		},
	}
}

func newHistorySaveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "save <id> [path]",
		Short: "Write an entry's image to disk",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := helpers.LoadedHistory(cmd.Context(), container)
			if err != nil {
				return err
			}
			rec, err := findRecord(store.List, args[0])
			if err != nil {
				return err
			}
			dest := "."
			if len(args) == 2 {
				dest = args[1]
			}
			path, size, err := helpers.SaveDataURI(rec.ImageURL, captionPrompt(rec.Content), dest)
			if err != nil {
				return fmt.Errorf("failed to save image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%s)\n", path, humanize.Bytes(uint64(size)))
			return nil
		},
	}
}

func newHistoryShareCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "share <id>",
		Short: "Copy an entry's image data URI to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := helpers.LoadedHistory(cmd.Context(), container)
			if err != nil {
				return err
			}
			rec, err := findRecord(store.List, args[0])
			if err != nil {
				return err
			}
			helpers.CopyImageURL(cmd, container.Clipboard, rec.ImageURL)
			return nil
		},
	}
}

func findRecord(list func(string) ([]domain.HistoryRecord, error), id string) (domain.HistoryRecord, error) {
	records, err := list("")
	if err != nil {
		return domain.HistoryRecord{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.HistoryRecord{}, fmt.Errorf("no history entry with id %s", id)
}

// captionPrompt recovers the prompt from a `Generated image for: "..."` caption.
func captionPrompt(content string) string {
	if inner, ok := strings.CutPrefix(content, `Generated image for: "`); ok {
		return strings.TrimSuffix(inner, `"`)
	}
	return content
}

// listHistoryEntries prints the last limit records.
func listHistoryEntries(out io.Writer, records []domain.HistoryRecord, limit int) {
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}

	for _, rec := range records {
		kind := "image"
		if rec.Fallback {
			kind = "placeholder"
		}
		ratio := string(rec.AspectRatio)
		if ratio == "" {
			ratio = "-"
		}
		fmt.Fprintf(out, "%s | %s (%s) | %s | %s | %s\n",
			rec.ID,
			rec.Timestamp.Local().Format(TimestampFormat),
			humanize.Time(rec.Timestamp),
			ratio,
			kind,
			rec.Content)
	}
}
