package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/agentcfg/internal/compile"
	"github.com/thoreinstein/agentcfg/internal/document"
	"github.com/thoreinstein/agentcfg/internal/errors"
	"github.com/thoreinstein/agentcfg/internal/logging"
	"github.com/thoreinstein/agentcfg/internal/paths"
)

// documentPath resolves the agents.toml location: the --config flag
// wins, then the app settings override, then the standard XDG path.
func documentPath() string {
	if configFlag != "" {
		return configFlag
	}
	return appCfg.DocumentPath()
}

// parseToolFlags maps --tool values to tool names. An empty list or
// "all" means every concrete tool.
func parseToolFlags(values []string) ([]document.ToolName, error) {
	if len(values) == 0 {
		return document.ConcreteTools(), nil
	}

	var tools []document.ToolName
	for _, v := range values {
		tool, ok := document.ParseToolName(v)
		if !ok {
			names := make([]string, 0, len(document.ConcreteTools()))
			for _, t := range document.ConcreteTools() {
				names = append(names, string(t))
			}
			return nil, errors.NewUserError(
				errors.Newf("unknown tool %q", v),
				"valid tools: "+strings.Join(names, ", "))
		}
		if tool == document.ToolAll {
			return document.ConcreteTools(), nil
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

// newCompiler builds a compiler from the global flags and app settings.
func newCompiler(cmd *cobra.Command, tools []document.ToolName) *compile.Compiler {
	opts := []compile.Option{
		compile.WithConfigPath(documentPath()),
		compile.WithStatePath(paths.StatePath()),
		compile.WithTools(tools...),
		compile.WithBackup(appCfg == nil || appCfg.Backup),
		compile.WithLogger(logging.FromContext(cmd.Context())),
	}
	if appCfg != nil {
		for name, path := range appCfg.Outputs {
			if tool, ok := document.ParseToolName(name); ok && tool != document.ToolAll {
				opts = append(opts, compile.WithOutputPath(tool, path))
			}
		}
	}
	return compile.New(opts...)
}
