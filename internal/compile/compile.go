// Package compile drives the full pipeline from the unified agents.toml
// document to per-tool config files: parse, expand, validate, filter,
// transform, back up, write, and record state.
package compile

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/thoreinstein/agentcfg/internal/backup"
	"github.com/thoreinstein/agentcfg/internal/diff"
	"github.com/thoreinstein/agentcfg/internal/document"
	"github.com/thoreinstein/agentcfg/internal/document/validator"
	"github.com/thoreinstein/agentcfg/internal/errors"
	"github.com/thoreinstein/agentcfg/internal/expand"
	"github.com/thoreinstein/agentcfg/internal/logging"
	"github.com/thoreinstein/agentcfg/internal/paths"
	"github.com/thoreinstein/agentcfg/internal/state"
	"github.com/thoreinstein/agentcfg/internal/transform"
	"github.com/thoreinstein/agentcfg/pkg/fileutil"
)

// Compiler runs the compile pipeline.
type Compiler struct {
	configPath string
	statePath  string
	outputs    map[document.ToolName]string
	backup     bool
	tools      []document.ToolName
	logger     *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithConfigPath sets where the agents.toml document is read from.
func WithConfigPath(path string) Option {
	return func(c *Compiler) { c.configPath = path }
}

// WithStatePath sets where compile state is persisted.
func WithStatePath(path string) Option {
	return func(c *Compiler) { c.statePath = path }
}

// WithOutputPath overrides the output file for one tool.
func WithOutputPath(tool document.ToolName, path string) Option {
	return func(c *Compiler) { c.outputs[tool] = path }
}

// WithBackup enables or disables .backup siblings for existing outputs.
func WithBackup(enabled bool) Option {
	return func(c *Compiler) { c.backup = enabled }
}

// WithTools restricts the compile to a subset of tools.
func WithTools(tools ...document.ToolName) Option {
	return func(c *Compiler) { c.tools = tools }
}

// WithLogger sets the logger used for progress and warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

// New returns a Compiler with defaults applied: standard paths, all
// concrete tools, backups on.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		configPath: paths.ConfigPath(),
		statePath:  paths.StatePath(),
		outputs:    make(map[document.ToolName]string),
		backup:     true,
		tools:      document.ConcreteTools(),
		logger:     logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ToolResult reports the outcome of one tool's output file.
type ToolResult struct {
	Tool       document.ToolName
	Path       string
	BackupPath string
	Written    bool
	Err        error
}

// Result reports the outcome of a compile run.
type Result struct {
	Tools    []ToolResult
	Warnings []string
}

// Run executes the pipeline. Per-tool write failures do not stop the
// remaining tools; when some outputs succeed and others fail the
// returned error carries the partial-failure exit code.
func (c *Compiler) Run(ctx context.Context) (*Result, error) {
	doc, exp, err := c.load()
	if err != nil {
		return nil, err
	}

	result := &Result{Warnings: exp.Warnings()}
	for _, warning := range result.Warnings {
		c.logger.Warn(warning)
	}

	tracker := state.NewTracker(c.statePath, c.logger)
	if err := tracker.Load(); err != nil {
		return nil, errors.NewExitError(err, errors.ExitSystem)
	}

	var wrote, failed int
	for _, tool := range c.tools {
		if err := ctx.Err(); err != nil {
			return result, errors.NewExitError(err, errors.ExitSystem)
		}

		tr := c.compileTool(doc, tool, tracker)
		result.Tools = append(result.Tools, tr)
		if tr.Err != nil {
			failed++
			c.logger.Error("tool output failed", "tool", tool, "error", tr.Err)
			continue
		}
		wrote++
	}

	if wrote > 0 {
		if err := tracker.Save(); err != nil {
			return result, errors.NewExitError(err, errors.ExitSystem)
		}
	}

	switch {
	case failed == 0:
		return result, nil
	case wrote > 0:
		return result, errors.NewExitError(
			errors.Newf("%d of %d tool outputs failed", failed, failed+wrote),
			errors.ExitPartial)
	default:
		return result, result.Tools[0].Err
	}
}

// Diff renders what a compile would change without writing anything.
// It returns true when at least one output would change.
func (c *Compiler) Diff(ctx context.Context, render func(tool document.ToolName, diff string)) (bool, error) {
	doc, _, err := c.load()
	if err != nil {
		return false, err
	}

	changed := false
	for _, tool := range c.tools {
		if err := ctx.Err(); err != nil {
			return changed, errors.NewExitError(err, errors.ExitSystem)
		}

		data, path, err := c.renderTool(doc, tool)
		if err != nil {
			return changed, err
		}

		old, err := readExisting(path)
		if err != nil {
			return changed, errors.NewExitError(err, errors.ExitSystem)
		}

		text, err := diff.Unified(old, data, path)
		if err != nil {
			return changed, errors.NewExitError(err, errors.ExitSystem)
		}
		if text != "" {
			changed = true
			render(tool, text)
		}
	}
	return changed, nil
}

// load parses, expands, and validates the document, mapping failures
// to their exit codes.
func (c *Compiler) load() (*document.Document, *expand.Expander, error) {
	doc, err := document.Load(c.configPath)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrNotFound):
			return nil, nil, errors.NewUserError(err,
				"run 'agentcfg init' to create a starter configuration")
		case errors.Is(err, errors.ErrPermission):
			return nil, nil, errors.NewExitError(err, errors.ExitSystem)
		default:
			return nil, nil, errors.NewExitError(err, errors.ExitParse)
		}
	}

	exp := expand.FromEnviron(doc.Env)
	if err := exp.Document(doc); err != nil {
		return nil, nil, errors.NewExitError(err, errors.ExitExpansion)
	}

	if errs := validator.Validate(doc); len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.Error()
		}
		return nil, nil, errors.NewExitError(
			errors.Newf("configuration is invalid:\n  %s", strings.Join(messages, "\n  ")),
			errors.ExitValidation)
	}

	return doc, exp, nil
}

// renderTool produces the output bytes and destination path for one tool.
func (c *Compiler) renderTool(doc *document.Document, tool document.ToolName) ([]byte, string, error) {
	transformer, err := transform.For(tool)
	if err != nil {
		return nil, "", errors.NewUserError(err, "valid tools: claude-code, cursor, opencode, codex")
	}

	servers := transform.Filter(doc.Servers, tool, doc.DefaultTargets())
	data, err := transformer.Transform(servers)
	if err != nil {
		return nil, "", errors.NewExitError(err, errors.ExitTransform)
	}

	path, ok := c.outputs[tool]
	if !ok {
		path, err = paths.ToolConfigPath(tool)
		if err != nil {
			return nil, "", errors.NewExitError(err, errors.ExitSystem)
		}
	}
	return data, path, nil
}

// compileTool renders, backs up, writes, and records one tool's output.
// A backup failure aborts the write so the existing file is never
// clobbered without a preserved copy.
func (c *Compiler) compileTool(doc *document.Document, tool document.ToolName, tracker *state.Tracker) ToolResult {
	result := ToolResult{Tool: tool}

	data, path, err := c.renderTool(doc, tool)
	if err != nil {
		result.Err = err
		return result
	}
	result.Path = path

	if c.backup {
		backupPath, err := backup.Create(path)
		if err != nil {
			result.Err = errors.NewExitError(err, errors.ExitSystem)
			return result
		}
		result.BackupPath = backupPath
	}

	if err := fileutil.AtomicWriteFile(path, data, fileutil.ConfigFilePerm); err != nil {
		result.Err = errors.NewExitError(err, errors.ExitSystem)
		return result
	}
	result.Written = true

	hash, err := state.HashFile(path)
	if err != nil {
		result.Err = errors.NewExitError(err, errors.ExitSystem)
		return result
	}
	tracker.Record(state.GeneratedFile{
		Tool:      string(tool),
		Path:      path,
		Timestamp: time.Now().UTC(),
		Hash:      hash,
	})

	c.logger.Info("wrote tool config", "tool", tool, "path", path)
	return result
}

// readExisting returns a file's contents, or nil when it does not
// exist so the diff can mark it as new.
func readExisting(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}
