package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <layout>",
	Short: "Describe a record layout",
	Long: `Describe a record layout as a C-style struct declaration.

Example:
  rawdb -l layouts/item.yaml inspect item`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := lookupLayout(args[0])
		if err != nil {
			return err
		}
		fmt.Println(layout.Describe())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
