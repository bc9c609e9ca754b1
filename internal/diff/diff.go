// Package diff renders unified diffs between current and pending
// config file contents.
package diff

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/thoreinstein/agentcfg/internal/errors"
)

// Unified returns a unified diff from old to new with three lines of
// context. A nil old marks the file as not yet existing, which is
// reflected in the header. Identical contents yield "".
func Unified(old, new []byte, path string) (string, error) {
	toFile := path
	if old == nil {
		toFile = path + " (new)"
	}

	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(old)),
		B:        difflib.SplitLines(string(new)),
		FromFile: path,
		ToFile:   toFile,
		Context:  3,
	})
	if err != nil {
		return "", errors.Wrapf(err, "diffing %s", path)
	}
	return text, nil
}
