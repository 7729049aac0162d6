package helpers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptForYesNo asks a yes/no question and returns defaultValue on empty input.
func PromptForYesNo(out io.Writer, reader *bufio.Reader, promptText string, defaultValue bool) bool {
	label := "y/N"
	if defaultValue {
		label = "Y/n"
	}
	fmt.Fprintf(out, "%s [%s]: ", promptText, label)

	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return defaultValue
	}
	return line == "y" || line == "yes"
}
