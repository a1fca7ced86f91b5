// Package highscore persists the best score as a single decimal integer in
// a plain text file.
package highscore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// File is a high-score store backed by one text file. It is safe for
// concurrent use by several game sessions in one process.
type File struct {
	path   string
	logger *log.Logger
	mu     sync.Mutex
}

// NewFile returns a store for path. A nil logger discards diagnostics.
func NewFile(path string, logger *log.Logger) *File {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &File{path: path, logger: logger}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load returns the stored score. A missing, unreadable or unparsable
// file yields 0.
func (f *File) Load() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Submit records score if it beats the stored value and returns the best
// score afterwards. The read and the write happen under one lock, so a
// session holding a stale best cannot lower the file. Callers treat
// failures as non-fatal; the error is logged at debug level and returned.
func (f *File) Submit(score int) (best int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := f.read()
	if score <= stored {
		return stored, nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		f.logger.Debug("cannot create high score directory", "path", f.path, "err", err)
		return stored, fmt.Errorf("highscore: cannot create directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		f.logger.Debug("cannot write high score", "path", f.path, "err", err)
		return stored, fmt.Errorf("highscore: cannot write %s: %w", f.path, err)
	}
	return score, nil
}

func (f *File) read() int {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Debug("cannot read high score", "path", f.path, "err", err)
		}
		return 0
	}

	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || score < 0 {
		f.logger.Debug("ignoring malformed high score", "path", f.path, "content", string(data))
		return 0
	}
	return score
}
