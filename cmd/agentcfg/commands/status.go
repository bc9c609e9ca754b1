package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/agentcfg/internal/errors"
	"github.com/thoreinstein/agentcfg/internal/logging"
	"github.com/thoreinstein/agentcfg/internal/paths"
	"github.com/thoreinstein/agentcfg/internal/state"
)

var statusOutput string

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "text",
		"output format: text, json, yaml")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the last compile produced",
	Long: `Show the files the last compile wrote and whether they have been
modified since. Each generated file's current hash is compared against
the one recorded at compile time, so hand-edited or deleted files are
called out.`,
	Example: `  # Human-readable overview
  agentcfg status

  # Machine-readable output for scripting
  agentcfg status -o json
  agentcfg status -o yaml`,
	RunE: runStatus,
}

// fileStatus describes one generated file's current condition.
type fileStatus struct {
	Tool      string    `json:"tool" yaml:"tool"`
	Path      string    `json:"path" yaml:"path"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	State     string    `json:"state" yaml:"state"`
}

// statusReport is the full status document.
type statusReport struct {
	LastCompile *time.Time   `json:"last_compile,omitempty" yaml:"last_compile,omitempty"`
	Files       []fileStatus `json:"files" yaml:"files"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	switch statusOutput {
	case "text", "json", "yaml":
	default:
		return errors.NewUserError(
			errors.Newf("unknown output format %q", statusOutput),
			"valid formats: text, json, yaml")
	}

	tracker := state.NewTracker(paths.StatePath(), logging.FromContext(cmd.Context()))
	if err := tracker.Load(); err != nil {
		return errors.NewExitError(err, errors.ExitSystem)
	}

	report := statusReport{Files: []fileStatus{}}
	if last := tracker.LastCompile(); !last.IsZero() {
		report.LastCompile = &last
	}
	for _, f := range tracker.GeneratedFiles() {
		report.Files = append(report.Files, fileStatus{
			Tool:      f.Tool,
			Path:      f.Path,
			Timestamp: f.Timestamp,
			State:     fileState(f),
		})
	}

	out := cmd.OutOrStdout()
	switch statusOutput {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return errors.Wrap(encoder.Encode(report), "encoding status")
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return errors.Wrap(encoder.Encode(report), "encoding status")
	}

	if report.LastCompile == nil {
		fmt.Fprintln(out, "No compile recorded. Run 'agentcfg compile' first.")
		return nil
	}
	fmt.Fprintf(out, "Last compile: %s\n\n", report.LastCompile.Local().Format(time.RFC1123))
	for _, f := range report.Files {
		var marker string
		switch f.State {
		case stateUnchanged:
			marker = color.GreenString("✓")
		case stateModified:
			marker = color.YellowString("!")
		default:
			marker = color.RedString("✗")
		}
		fmt.Fprintf(out, "  %s %-12s %s (%s)\n", marker, f.Tool, f.Path, f.State)
	}
	return nil
}

const (
	stateUnchanged = "unchanged"
	stateModified  = "modified"
	stateMissing   = "missing"
)

// fileState compares a generated file's recorded hash to its contents
// on disk. Unreadable counts as missing.
func fileState(f state.GeneratedFile) string {
	hash, err := state.HashFile(f.Path)
	if err != nil {
		return stateMissing
	}
	if hash == f.Hash {
		return stateUnchanged
	}
	return stateModified
}
