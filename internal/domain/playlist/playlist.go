// Package playlist provides named track collections loaded from disk.
package playlist

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/oddeko/tunebox/internal/domain/track"
)

// Collection represents a named list of media file paths to be queued
// in order.
type Collection struct {
	Name  string
	Paths []string
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.Paths)
}

// LoadM3U reads an .m3u playlist: one path per line, blank lines and
// lines starting with '#' (extended m3u directives) skipped. Relative
// entries are resolved against the playlist's directory.
func LoadM3U(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open playlist %s", path)
	}
	defer f.Close()

	base := filepath.Dir(path)
	c := &Collection{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		c.Paths = append(c.Paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read playlist %s", path)
	}

	return c, nil
}

// FromDir scans a directory (non-recursive) for supported media files,
// sorted by file name.
func FromDir(dir string, extensions []string) (*Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read dir %s", dir)
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[track.NormalizeExt(ext)] = struct{}{}
	}

	c := &Collection{Name: filepath.Base(dir)}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := track.NormalizeExt(filepath.Ext(e.Name()))
		if _, ok := allowed[ext]; !ok {
			continue
		}
		c.Paths = append(c.Paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(c.Paths)

	return c, nil
}
