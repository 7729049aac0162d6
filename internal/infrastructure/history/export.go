package history

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/doeshing/imagegen/internal/domain"
	"github.com/doeshing/imagegen/internal/ports"
)

// ExportJSONL writes every record to dest, one JSON object per line.
func ExportJSONL(store ports.HistoryRepository, dest string) (n int, err error) {
	records, err := store.List("")
	if err != nil {
		return 0, err
	}
	file, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			n, err = 0, closeErr
		}
	}()

	w := bufio.NewWriter(file)
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return 0, err
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return 0, err
		}
	}
	if err := w.Flush(); err != nil {
		return 0, err
	}
	return len(records), nil
}
