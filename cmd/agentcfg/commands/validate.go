package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/agentcfg/internal/document"
	"github.com/thoreinstein/agentcfg/internal/document/validator"
	"github.com/thoreinstein/agentcfg/internal/errors"
	"github.com/thoreinstein/agentcfg/internal/expand"
	"github.com/thoreinstein/agentcfg/internal/logging"
)

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check agents.toml without writing anything",
	Long: `Parse and validate the agents.toml document, reporting every problem
found rather than stopping at the first. Variables are expanded before
validation so the checked values match what compile would write.`,
	Example: `  # Validate the configuration
  agentcfg validate

  # Machine-readable result for scripting
  agentcfg validate --json`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	path := documentPath()

	doc, err := document.Load(path)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrNotFound):
			return errors.NewUserError(err,
				"run 'agentcfg init' to create a starter configuration")
		case errors.Is(err, errors.ErrPermission):
			return errors.NewExitError(err, errors.ExitSystem)
		default:
			return errors.NewExitError(err, errors.ExitParse)
		}
	}

	exp := expand.FromEnviron(doc.Env)
	if err := exp.Document(doc); err != nil {
		return errors.NewExitError(err, errors.ExitExpansion)
	}

	logger := logging.FromContext(cmd.Context())
	for _, warning := range exp.Warnings() {
		logger.Warn(warning)
	}

	errs := validator.Validate(doc)

	format := validator.FormatText
	if validateJSON {
		format = validator.FormatJSON
	}
	reporter := validator.NewReporter(cmd.OutOrStdout(), format)
	if err := reporter.Report(errs); err != nil {
		return errors.NewExitError(err, errors.ExitSystem)
	}

	if len(errs) > 0 {
		return errors.NewExitError(
			errors.Newf("%d validation error(s)", len(errs)),
			errors.ExitValidation)
	}
	return nil
}
