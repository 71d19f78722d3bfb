package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/atas/pkg/config"
	"tableflip.dev/atas/pkg/store"
)

type Info struct {
	Config      config.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(config.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintln(out, config.ConfigPathEnv, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, config.ConfigPathEnv, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	if f := n.Config.File(); f != "" {
		_, _ = fmt.Fprintln(out, "Config file:", f)
	} else {
		_, _ = fmt.Fprintln(out, "Config file: none")
	}
	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())

	if n.Persistence == nil {
		return fmt.Errorf("info: no persistence")
	}

	if d, ok := n.Persistence.(store.Describer); ok {
		_, _ = fmt.Fprintf(out, "Documents:\n")
		keys := d.Keys(ctx)
		for _, k := range keys {
			_, _ = fmt.Fprintf(out, "  %s\n", k)
		}
		if len(keys) == 0 {
			_, _ = fmt.Fprintf(out, "  %s\n", "no documents")
		}
	}

	students, sessions, err := n.Persistence.Load(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Students: %d\n", len(students))
	_, _ = fmt.Fprintf(out, "Sessions: %d\n", len(sessions))
	return nil
}
