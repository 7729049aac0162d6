package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/imagegen/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose(os.Args[1:])}

	root, container, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	err = root.ExecuteContext(ctx)
	_ = container.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isVerbose is resolved before cobra parses flags because the logger is
// built together with the container.
func isVerbose(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "--debug" || arg == "--debug=true" {
			return true
		}
	}
	value := os.Getenv("IMAGEGEN_DEBUG")
	return value == "1" || strings.EqualFold(value, "true")
}
