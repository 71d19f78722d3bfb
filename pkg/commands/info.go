package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/atas/pkg/commands/options"
	"tableflip.dev/atas/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where data is stored.",
		Example: `
atas info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			s := info.Info{
				Config:      env.Config,
				Persistence: env.Persistence,
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
