package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"
)

var putCmd = &cobra.Command{
	Use:   "put <key>=<file>...",
	Short: "Store objects",
	Long:  "Store one or more files under the given keys. Use '-' as the file to read a single object from stdin.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPut,
}

func init() {
	putCmd.Flags().Int("concurrency", 4, "parallel uploads")
	rootCmd.AddCommand(putCmd)
}

func runPut(cmd *cobra.Command, args []string) (err error) {
	backend, err := openBackend(cmd)
	if err != nil {
		return err
	}
	defer closeBackend(backend, &err)

	concurrency, _ := cmd.Flags().GetInt("concurrency")

	p := pool.New().WithMaxGoroutines(concurrency).WithContext(cmd.Context()).WithCancelOnError()

	for _, arg := range args {
		key, file, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid argument %q, want key=file", arg)
		}

		p.Go(func(ctx context.Context) error {
			var in io.Reader = os.Stdin
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			if err := backend.Put(ctx, key, in); err != nil {
				return fmt.Errorf("put %s: %w", key, err)
			}
			fmt.Fprintf(os.Stderr, "stored %s\n", key)
			return nil
		})
	}

	return p.Wait()
}
