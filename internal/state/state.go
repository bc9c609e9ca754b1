// Package state tracks which config files earlier compiles produced,
// so later runs can tell generated files apart from hand-edited ones.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/thoreinstein/agentcfg/internal/errors"
	"github.com/thoreinstein/agentcfg/pkg/fileutil"
)

// Version is the state file schema version.
const Version = "1.0"

// GeneratedFile records one config file written by a compile.
type GeneratedFile struct {
	Tool      string    `json:"tool"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Hash      string    `json:"hash"`
}

// File is the on-disk state document.
type File struct {
	Version        string          `json:"version"`
	LastCompile    time.Time       `json:"last_compile"`
	GeneratedFiles []GeneratedFile `json:"generated_files"`
}

// Tracker loads, updates, and persists the state file.
type Tracker struct {
	path   string
	file   File
	logger *slog.Logger
}

// NewTracker returns a tracker persisting to path.
func NewTracker(path string, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{
		path:   path,
		file:   File{Version: Version},
		logger: logger,
	}
}

// Load reads the state file. A missing file yields empty state; a
// corrupt one is discarded with a warning rather than blocking the
// compile.
func (t *Tracker) Load() error {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "reading state file %s", t.path)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		t.logger.Warn("state file is corrupt, starting fresh",
			"path", t.path, "error", err)
		return nil
	}
	t.file = file
	return nil
}

// Record upserts the entry for file.Path and refreshes the last
// compile time.
func (t *Tracker) Record(file GeneratedFile) {
	t.file.LastCompile = file.Timestamp
	for i, existing := range t.file.GeneratedFiles {
		if existing.Path == file.Path {
			t.file.GeneratedFiles[i] = file
			return
		}
	}
	t.file.GeneratedFiles = append(t.file.GeneratedFiles, file)
}

// GeneratedFiles returns the recorded entries.
func (t *Tracker) GeneratedFiles() []GeneratedFile {
	return t.file.GeneratedFiles
}

// LastCompile returns the time of the most recent recorded compile,
// or the zero time when nothing has been compiled.
func (t *Tracker) LastCompile() time.Time {
	return t.file.LastCompile
}

// Save writes the state file atomically.
func (t *Tracker) Save() error {
	t.file.Version = Version
	if err := fileutil.AtomicWriteJSON(t.path, t.file); err != nil {
		return errors.Wrapf(err, "writing state file %s", t.path)
	}
	return nil
}

// HashFile streams path through SHA-256 and returns the digest in the
// "sha256:<hex>" form stored in state entries.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, 8*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", errors.Wrapf(err, "hashing %s", path)
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}
