package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/atas/pkg/commands/options"
	"tableflip.dev/atas/pkg/parser"
	"tableflip.dev/atas/pkg/runner/exec"
)

func addExec(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	var line string

	cmd := &cobra.Command{
		Use:   "exec COMMAND [ARGS...]",
		Short: "Run one command and exit",
		Example: `
atas exec add n/Alice Tan m/A1234567X e/alice@example.com t/tutor
atas exec addses se/Tutorial 1 sd/10/10/2020
atas exec --yes delete 2
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a command")
			}
			line = strings.Join(args, " ")
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return wordCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			l, err := loadLogic(cmd.Context())
			if err != nil {
				return err
			}
			e := exec.Exec{
				Logic: l,
				Line:  line,
				Yes:   co.Yes,
			}
			err = e.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	// Everything after the command word belongs to the command line.
	cmd.Flags().SetInterspersed(false)
	options.AddConfirmArg(cmd, co)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func wordCompletions(toComplete string) []string {
	var words []string
	for _, d := range parser.Descriptors() {
		if strings.HasPrefix(d.Word, toComplete) {
			words = append(words, d.Word)
		}
	}
	return words
}
