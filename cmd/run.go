package cmd

import (
	"github.com/spf13/cobra"
	"github.com/telamesh/hwmp/core"
	"github.com/telamesh/hwmp/state"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run hwmpd",
	Long:  `This will run the path selection daemon on the current host using the node config.`,
	Run: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		core.Bootstrap(nodeConfigPath, logPath, verbose)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	runCmd.Flags().BoolVarP(&state.DBG_log_paths, "lpaths", "t", false, "Periodically write the path table to the console")
	runCmd.Flags().BoolVarP(&state.DBG_log_path_changes, "lpchange", "g", false, "Write path changes to the console")
	runCmd.Flags().BoolVarP(&state.DBG_log_elements, "lelem", "e", false, "Write transmitted elements to the console")
	runCmd.Flags().BoolVarP(&state.DBG_debug, "debug", "d", false, "Serve pprof and metrics on :6060")
}
