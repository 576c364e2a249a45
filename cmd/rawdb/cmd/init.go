package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pprehq/rawdb/pkg/config"
)

var (
	initConfigPath string
	initAPIKey     string
	initForce      bool
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a server config file",
	Long: `Write a config file for the serve command, generating an API key
when none is given. Layout files passed with --layout are recorded in the
config so serve picks them up without flags.

Example:
  rawdb -l layouts/item.yaml init --config rawdb.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(initConfigPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", initConfigPath)
		}

		apiKey := initAPIKey
		if apiKey == "" {
			var err error
			apiKey, err = generateAPIKey()
			if err != nil {
				return fmt.Errorf("failed to generate API key: %w", err)
			}
		}

		cfg := config.DefaultConfig()
		cfg.APIKey = apiKey
		cfg.Layouts = layoutPaths
		if err := config.SaveConfig(cfg, initConfigPath); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		logger.Info().Str("path", initConfigPath).Msg("config written")
		cmd.Printf("Config written to %s\n", initConfigPath)
		cmd.Printf("API key: %s\n", apiKey)
		return nil
	},
}

func generateAPIKey() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initConfigPath, "config", "rawdb.yaml", "Config file to write")
	initCmd.Flags().StringVar(&initAPIKey, "api-key", "", "API key to record (generated when empty)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}
