package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/testbed-ci/rig/internal/config"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Output JSON Schema for rig.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(string(config.Schema()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
