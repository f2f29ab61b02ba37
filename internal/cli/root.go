package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	Version    = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "rig",
	Short: "Rig - dispatches test jobs as child processes and catches the ones that hang",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "rig.yaml", "path to config file")
}

func Execute() error {
	return rootCmd.Execute()
}
