package monitor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const watchFile = "urls.json"

// WatchList persists the monitored URLs as a JSON array.
type WatchList struct {
	path     string
	defaults []string
	mu       sync.Mutex
}

// NewWatchList stores the list under dataDir. defaults are served until a
// list is saved.
func NewWatchList(dataDir string, defaults []string) *WatchList {
	return &WatchList{
		path:     filepath.Join(dataDir, watchFile),
		defaults: append([]string(nil), defaults...),
	}
}

// Get returns the stored URLs, or the defaults when the file is missing,
// unreadable or empty.
func (w *WatchList) Get() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := os.ReadFile(w.path)
	if err != nil {
		return w.defaultURLs()
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil || len(urls) == 0 {
		return w.defaultURLs()
	}
	return urls
}

// Set keeps the non-blank URLs, persists them and returns what was saved.
func (w *WatchList) Set(urls []string) ([]string, error) {
	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.TrimSpace(u) != "" {
			cleaned = append(cleaned, u)
		}
	}
	if len(cleaned) == 0 {
		cleaned = w.defaultURLs()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(cleaned, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save watch list: %w", err)
	}
	return cleaned, nil
}

func (w *WatchList) defaultURLs() []string {
	return append([]string(nil), w.defaults...)
}
