package commands

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/atas/pkg/commands/options"
	"tableflip.dev/atas/pkg/config"
	"tableflip.dev/atas/pkg/logging"
	"tableflip.dev/atas/pkg/logic"
	"tableflip.dev/atas/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "atas",
		Short: base.Wrap80("Track a tutorial roster, its sessions and who attended them."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRepl(topLevel)
	addExec(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// environment is what every runner that touches data needs.
type environment struct {
	Config      config.Config
	Log         zerolog.Logger
	Persistence store.Persistence
}

func loadEnvironment() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.Setup(cfg.LogLevel(), cfg.LogFormat(), os.Stderr)
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", cfg.BasePath()).Str("config", cfg.File()).Msg("environment")
	return &environment{Config: cfg, Log: log, Persistence: p}, nil
}

func loadLogic(ctx context.Context) (*logic.Logic, error) {
	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}
	return logic.Load(ctx, env.Persistence, env.Log)
}
