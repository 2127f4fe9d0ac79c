// Package cli is the assistant command line: route, order, bench and index.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"assistant-kit/config"
	"assistant-kit/internal/app"
	"assistant-kit/pkg/llmprovider"
	"assistant-kit/pkg/log"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd(&state{loadConfig: config.Load}).Execute()
}

// state is shared by all subcommands and resolved lazily, so --help works
// without a config file.
type state struct {
	configPath string
	loadConfig func() (*config.Config, error)

	cfg       *config.Config
	logger    log.Logger
	completer llmprovider.Completer
}

func (s *state) config() (*config.Config, error) {
	if s.cfg != nil {
		return s.cfg, nil
	}
	if s.configPath != "" {
		os.Setenv("CONFIG_PATH", s.configPath)
	}
	cfg, err := s.loadConfig()
	if err != nil {
		return nil, err
	}
	s.cfg = cfg
	return cfg, nil
}

func (s *state) log() log.Logger {
	if s.logger == nil {
		if s.cfg == nil {
			return log.NewNop()
		}
		s.logger = app.NewLogger(s.cfg)
	}
	return s.logger
}

func (s *state) llm() (llmprovider.Completer, error) {
	if s.completer != nil {
		return s.completer, nil
	}
	cfg, err := s.config()
	if err != nil {
		return nil, err
	}
	manager, err := app.NewManager(cfg, s.log())
	if err != nil {
		return nil, err
	}
	s.completer = manager
	return manager, nil
}

func newRootCmd(s *state) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "assistant",
		Short:         "Intent-routed assistant with schema extraction memory",
		Long:          "assistant routes messages to intent prompts, runs the shoe order agent, benchmarks conversation log backends and loads intent indexes.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVarP(&s.configPath, "config", "c", "", "path to config.yaml")

	rootCmd.AddCommand(
		newRouteCmd(s),
		newOrderCmd(s),
		newBenchCmd(s),
		newIndexCmd(s),
	)
	return rootCmd
}
