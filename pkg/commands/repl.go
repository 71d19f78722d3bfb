package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/atas/pkg/runner/repl"
)

func addRepl(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "repl",
		Aliases: []string{"shell"},
		Short:   "Start the interactive command loop",
		Example: `
atas repl
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			l, err := loadLogic(cmd.Context())
			if err != nil {
				return err
			}
			r := repl.Repl{Logic: l}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
