package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/agentcfg/internal/errors"
	"github.com/thoreinstein/agentcfg/pkg/fileutil"
)

var initForce bool

// sampleConfig is the starter document written by init.
const sampleConfig = `# agentcfg unified MCP configuration.
# Define each server once; agentcfg compiles it to every tool.

[settings]
version = "1.0"
# Tools that servers target when they do not say otherwise.
# default_targets = ["claude-code", "cursor"]

# Local variables, referenced as {NAME}. Shell variables are
# referenced as ${NAME} and read from the environment at compile time.
[env]
# GITHUB_PKG = "@modelcontextprotocol/server-github"

[mcp.servers.github]
command = "npx"
args = ["-y", "@modelcontextprotocol/server-github"]
targets = ["all"]

[mcp.servers.github.env]
GITHUB_PERSONAL_ACCESS_TOKEN = "${GITHUB_TOKEN}"

# HTTP servers use url instead of command:
# [mcp.servers.remote-api]
# url = "https://example.com/mcp"
# bearer_token = "${API_TOKEN}"
`

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"overwrite an existing configuration file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter agents.toml",
	Long: `Create a starter agents.toml with a commented example server. The file
is placed at the standard config path unless --config points elsewhere.
An existing file is never overwritten without --force.`,
	Example: `  # Create the starter configuration
  agentcfg init

  # Replace an existing configuration
  agentcfg init --force`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := documentPath()

	if _, err := os.Stat(path); err == nil && !initForce {
		return errors.NewUserError(
			errors.Newf("configuration already exists at %s", path),
			"use --force to overwrite it")
	}

	if err := fileutil.AtomicWriteFile(path, []byte(sampleConfig), fileutil.ConfigFilePerm); err != nil {
		return errors.NewExitError(err, errors.ExitSystem)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Created %s\n", color.GreenString("✓"), path)
	return nil
}
