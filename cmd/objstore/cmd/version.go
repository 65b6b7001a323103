package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aweris/objstore"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the engine version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("objstore v%s\n", objstore.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
