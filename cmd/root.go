package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	nodeConfigPath = "node.yaml"
	logPath        = ""
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hwmpd",
	Short: "HWMP mesh path selection daemon",
	Long: `hwmpd runs the 802.11s hybrid wireless mesh path selection protocol
over an emulated shared medium, discovering and maintaining forwarding paths
between mesh stations.`,
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
	rootCmd.PersistentFlags().StringVarP(&nodeConfigPath, "node-config", "n", nodeConfigPath, "node-specific config")
	rootCmd.PersistentFlags().StringVarP(&logPath, "log-path", "o", logPath, "mirror logs to this file")
}
