package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Retrieve an object",
	Long:  "Retrieve the object stored under key and write it to stdout or the file given with -o.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().StringP("output", "o", "", "write the object to this file instead of stdout")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) (err error) {
	backend, err := openBackend(cmd)
	if err != nil {
		return err
	}
	defer closeBackend(backend, &err)

	rc, err := backend.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	defer rc.Close()

	var out io.Writer = os.Stdout
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	}

	_, err = io.Copy(out, rc)
	return err
}
