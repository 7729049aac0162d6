package domain

import (
	"strings"
	"time"
)

// HistoryRecord is one persisted generation, independent of how the image was produced.
type HistoryRecord struct {
	ID          string      `json:"id"`
	Content     string      `json:"content"`
	ImageURL    string      `json:"imageUrl"`
	Timestamp   time.Time   `json:"timestamp"`
	AspectRatio AspectRatio `json:"aspectRatio,omitempty"`
	Fallback    bool        `json:"fallback,omitempty"`
}

// Matches reports whether the record content contains filter, ignoring case.
// An empty filter matches every record.
func (r HistoryRecord) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Content), strings.ToLower(filter))
}

// FilterRecords keeps matching records in their original order.
func FilterRecords(records []HistoryRecord, filter string) []HistoryRecord {
	out := make([]HistoryRecord, 0, len(records))
	for _, rec := range records {
		if rec.Matches(filter) {
			out = append(out, rec)
		}
	}
	return out
}

// NormalizeBackend folds a configured backend name to its canonical form.
// An empty name selects the JSON backend.
func NormalizeBackend(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return HistoryBackendJSON
	}
	return name
}
