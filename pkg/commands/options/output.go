package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/atas/pkg/command"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	// Out defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output errors as JSON.")
}

// HandleError prints err as JSON when asked to and swallows it. The kind is
// "parse" or "validation" for user errors and "internal" otherwise.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
			"kind":  kindOf(err),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		w := o.Out
		if w == nil {
			w = color.Output
		}
		_, _ = fmt.Fprintln(w, string(b))
		return nil
	}
	return err
}

func kindOf(err error) string {
	switch {
	case errors.Is(err, command.ErrParse):
		return "parse"
	case errors.Is(err, command.ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
