package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/telamesh/hwmp/state"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a starter node config",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		if err := state.NameValidator(name); err != nil {
			panic(err)
		}
		if _, err := os.Stat(nodeConfigPath); err == nil {
			panic(fmt.Errorf("%s already exists", nodeConfigPath))
		}

		addr, err := state.RandomMacAddr()
		if err != nil {
			panic(err)
		}
		cfg := state.LocalCfg{
			Id:         name,
			Addr:       addr,
			Listen:     "127.0.0.1:22180",
			Peers:      []string{"127.0.0.1:22181"},
			LinkMetric: 1,
		}
		out, err := yaml.Marshal(&cfg)
		if err != nil {
			panic(err)
		}
		err = os.WriteFile(nodeConfigPath, out, 0600)
		if err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %s. Fill in listen, peers and discover targets, then start with `hwmpd run`.\n", nodeConfigPath)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
