package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pranshu115/tatva/version"
)

// NewRootCommand builds the tatva command tree.
func NewRootCommand(env *Env) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "tatva",
		Short: "Procurement client",
		Long: `tatva talks to the procurement backend: sign in, browse vendors and RFQs,
and upload documents.

Configuration is read from tatva.yml, .env and TATVA_* environment
variables (for example TATVA_API_BASE_URL).`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(env.In)
	root.SetOut(env.Out)
	root.SetErr(env.Err)

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "config file (default ./tatva.yml)")
	pf.StringVar(&flags.api, "api", "", "API base URL (overrides api.base_url)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	pf.StringVarP(&flags.output, "output", "o", outputTable, "output format (table, json)")

	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		if flags.output != outputTable && flags.output != outputJSON {
			return fmt.Errorf("unknown output format %q", flags.output)
		}
		return nil
	}

	root.AddCommand(
		newLoginCommand(env, flags),
		newLogoutCommand(env, flags),
		newWhoamiCommand(env, flags),
		newVendorsCommand(env, flags),
		newRFQsCommand(env, flags),
		newDocumentsCommand(env, flags),
		newDashboardCommand(env, flags),
		newConfigCommand(env, flags),
		newVersionCommand(env, flags),
	)
	return root
}

func newVersionCommand(env *Env, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			info := version.Get()
			if flags.output == outputJSON {
				return printJSON(env.Out, info)
			}
			return renderKeyValues(env.Out, map[string]any{
				"version":    info.Version,
				"commit":     info.Commit,
				"build time": info.BuildTime,
				"go":         info.GoVersion,
				"dirty":      info.Dirty,
			})
		},
	}
}
