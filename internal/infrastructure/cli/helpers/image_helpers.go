package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/pkg/filesystem"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// DownloadName mirrors the browser download name: imagegen-<first 20 chars>.<ext>.
func DownloadName(prompt, mimeType string) string {
	runes := []rune(prompt)
	if len(runes) > 20 {
		runes = runes[:20]
	}
	return "imagegen-" + unsafeFileChars.ReplaceAllString(string(runes), "_") + domain.FileExtension(mimeType)
}

// SaveDataURI decodes imageURL and writes the raw bytes. A directory dest
// receives a file named by DownloadName. Returns the written path and size.
func SaveDataURI(imageURL, prompt, dest string) (string, int, error) {
	mimeType, data, err := domain.DecodeDataURI(imageURL)
	if err != nil {
		return "", 0, err
	}

	path := filesystem.ExpandPath(dest)
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, DownloadName(prompt, mimeType))
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return "", 0, err
	}
	if err := filesystem.WriteFileAtomic(path, data, domain.FilePermissions); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", path, err)
	}
	return path, len(data), nil
}
