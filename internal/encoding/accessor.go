package encoding

import (
	"os"
	"path/filepath"
	"strings"
)

// Accessor reads previously rendered dataset text from a data directory.
// Renderings live at <dir>/<datasetDir>/<base><ext>, one file per encoding.
type Accessor struct {
	dir string
}

// NewAccessor creates an accessor rooted at dir.
func NewAccessor(dir string) *Accessor {
	return &Accessor{dir: strings.TrimSpace(dir)}
}

// Rendered returns the rendered text for one (dataset, encoding) pair.
// A missing or unreadable rendering is reported as ok=false rather than an
// error: callers degrade gracefully when a rendering does not exist.
func (a *Accessor) Rendered(datasetDir, base string, enc Encoding) (string, bool) {
	if a == nil {
		return "", false
	}
	ext := enc.Extension()
	if ext == "" || strings.TrimSpace(base) == "" {
		return "", false
	}

	path := filepath.Join(a.dir, datasetDir, base+ext)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(b), true
}
