/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pprehq/rawdb/pkg/codec"
	"github.com/pprehq/rawdb/pkg/config"
)

var (
	layoutPaths []string
	logLevel    string

	logger   zerolog.Logger
	registry *config.Registry
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rawdb",
	Short: "rawdb - fixed-layout binary record tool",
	Long: `rawdb packs and unpacks fixed-layout binary records, the kind of
raw game-data tables that ROM editors read and write. Layouts are
described in YAML files and passed with --layout.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()

		registry, err = config.NewRegistry(layoutPaths...)
		if err != nil {
			return fmt.Errorf("failed to load layouts: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&layoutPaths, "layout", "l", nil, "Layout definition file (repeatable)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
}

// lookupLayout resolves a layout name against the loaded registry.
func lookupLayout(name string) (*codec.Layout, error) {
	layout, ok := registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown layout %q (known: %v)", name, registry.Names())
	}
	return layout, nil
}
