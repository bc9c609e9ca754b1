package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/agentcfg/internal/compile"
	"github.com/thoreinstein/agentcfg/internal/document"
)

var (
	compileTools  []string
	compileDryRun bool
)

func init() {
	compileCmd.Flags().StringSliceVarP(&compileTools, "tool", "t", nil,
		"compile only the given tool(s): claude-code, cursor, opencode, codex")
	compileCmd.Flags().BoolVar(&compileDryRun, "dry-run", false,
		"show what would change without writing any files")
	rootCmd.AddCommand(compileCmd)
}

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Write every tool's config from agents.toml",
	Long: `Compile the unified agents.toml document into the native config file
of each tool.

The pipeline parses the document, expands shell and local variables,
validates the result, and then writes each tool's file. Existing files
are preserved as .backup siblings, writes are atomic, and each written
file is recorded in the state file with its SHA-256 hash.

A failure writing one tool's file does not stop the others; the exit
code reports the partial failure.`,
	Example: `  # Compile every tool
  agentcfg compile

  # Compile just Cursor's config
  agentcfg compile --tool cursor

  # Preview without writing
  agentcfg compile --dry-run`,
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, _ []string) error {
	tools, err := parseToolFlags(compileTools)
	if err != nil {
		return err
	}
	compiler := newCompiler(cmd, tools)

	if compileDryRun {
		return previewDiff(cmd, compiler)
	}

	result, runErr := compiler.Run(cmd.Context())
	if result != nil {
		out := cmd.OutOrStdout()
		for _, tr := range result.Tools {
			switch {
			case tr.Err != nil:
				fmt.Fprintf(out, "%s %s: %v\n", color.RedString("✗"), tr.Tool, tr.Err)
			case tr.BackupPath != "":
				fmt.Fprintf(out, "%s %s → %s (backup: %s)\n",
					color.GreenString("✓"), tr.Tool, tr.Path, tr.BackupPath)
			default:
				fmt.Fprintf(out, "%s %s → %s\n", color.GreenString("✓"), tr.Tool, tr.Path)
			}
		}
	}
	return runErr
}

// previewDiff renders pending changes without touching any file.
func previewDiff(cmd *cobra.Command, compiler *compile.Compiler) error {
	out := cmd.OutOrStdout()
	changed, err := compiler.Diff(cmd.Context(), func(tool document.ToolName, text string) {
		fmt.Fprintf(out, "%s\n", color.CyanString("# %s", tool))
		fmt.Fprint(out, text)
		fmt.Fprintln(out)
	})
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(out, "All tool configs are up to date.")
	}
	return nil
}
