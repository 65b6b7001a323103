package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete an object",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) (err error) {
	backend, err := openBackend(cmd)
	if err != nil {
		return err
	}
	defer closeBackend(backend, &err)

	if err := backend.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "deleted %s\n", args[0])
	return nil
}
