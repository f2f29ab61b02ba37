package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate rig.yaml and report errors",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadAndValidateConfig(configPath); err != nil {
			return err
		}
		fmt.Println("valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
