package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pprehq/rawdb/pkg/api"
	"github.com/pprehq/rawdb/pkg/config"
)

var (
	serveBind       string
	servePort       int
	serveAPIKey     string
	serveConfigPath string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP encode/decode service",
	Long: `Run an HTTP service exposing the loaded layouts for encoding and
decoding records over a JSON API.

Example:
  rawdb -l layouts/item.yaml serve --port 8420 --api-key secret`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveConfigPath != "" {
			cfg, err := config.LoadConfig(serveConfigPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if !cmd.Flags().Changed("bind") {
				serveBind = cfg.Bind
			}
			if !cmd.Flags().Changed("port") {
				servePort = cfg.Port
			}
			if !cmd.Flags().Changed("api-key") {
				serveAPIKey = cfg.APIKey
			}
			if len(cfg.Layouts) > 0 {
				registry, err = config.NewRegistry(append(layoutPaths, cfg.Layouts...)...)
				if err != nil {
					return fmt.Errorf("failed to load layouts: %w", err)
				}
			}
		}

		// Every /api/v1 request is checked against the key, so an empty
		// key would lock out all clients.
		if serveAPIKey == "" {
			return errors.New("--api-key is required (set the flag or the config file)")
		}

		server := api.NewServer(registry, api.ServerConfig{
			Bind:   serveBind,
			Port:   servePort,
			APIKey: serveAPIKey,
		}, logger)

		logger.Info().
			Str("bind", serveBind).
			Int("port", servePort).
			Strs("layouts", registry.Names()).
			Msg("starting server")
		return server.ListenAndServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveBind, "bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().IntVar(&servePort, "port", 8420, "Port to listen on")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "API key required on /api/v1 routes")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Server config file")
}
