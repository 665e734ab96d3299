package commands

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigCommand prints the effective configuration with credentials
// masked. Validation errors are reported after the dump so a broken file
// can still be inspected.
func newConfigCommand(env *Env, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			cfg.ApplyDefaults()

			out, err := yaml.Marshal(cfg.Redacted())
			if err != nil {
				return err
			}
			if flags.output == outputJSON {
				var tree map[string]any
				if err := yaml.Unmarshal(out, &tree); err != nil {
					return err
				}
				if err := printJSON(env.Out, tree); err != nil {
					return err
				}
			} else if _, err := env.Out.Write(out); err != nil {
				return err
			}
			return cfg.Validate()
		},
	}
}
