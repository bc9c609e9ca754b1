package commands

import (
	"github.com/spf13/cobra"
)

var diffTools []string

func init() {
	diffCmd.Flags().StringSliceVarP(&diffTools, "tool", "t", nil,
		"diff only the given tool(s): claude-code, cursor, opencode, codex")
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show what compile would change",
	Long: `Show a unified diff between each tool's current config file and what
a compile would write. Nothing is written; files that do not yet exist
are marked as new.`,
	Example: `  # Preview all pending changes
  agentcfg diff

  # Preview only Codex's config
  agentcfg diff --tool codex`,
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, _ []string) error {
	tools, err := parseToolFlags(diffTools)
	if err != nil {
		return err
	}
	return previewDiff(cmd, newCompiler(cmd, tools))
}
