// Package track provides the Track domain entity.
package track

import (
	"path/filepath"
	"strings"
	"time"
)

// Track represents a probed local media file.
// Contains only information known after open+probe succeeded.
type Track struct {
	Path     string        // File path as given by the caller
	Title    string        // Title from embedded tags (may be empty)
	Artist   string        // Artist from embedded tags (may be empty)
	Album    string        // Album from embedded tags (may be empty)
	Duration time.Duration // Total track length
}

// DisplayName returns the tag title, falling back to the file name.
func (t *Track) DisplayName() string {
	if t.Title != "" {
		return t.Title
	}
	return filepath.Base(t.Path)
}

// Ext returns the lower-cased file extension without the leading dot.
func (t *Track) Ext() string {
	return NormalizeExt(filepath.Ext(t.Path))
}

// NormalizeExt lower-cases an extension and strips a leading dot,
// so ".MP3", "mp3" and ".mp3" all compare equal.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
