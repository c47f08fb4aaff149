package cmd

import (
	"fmt"

	"github.com/procwarden/procwarden/pkg/digest"
	"github.com/spf13/cobra"
)

var chunkSize int

// digestCmd prints digests in the same layout as sha256sum so they can be pasted into a
// known digest list
var digestCmd = &cobra.Command{
	Use:   "digest <file>...",
	Short: "Print the SHA-256 digest of each file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := digest.NewEngine(chunkSize)
		failed := 0
		for _, path := range args {
			sum, err := engine.File(cmd.Context(), path)
			if err != nil {
				failed++
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, path)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files could not be digested", failed, len(args))
		}
		return nil
	},
}

func init() {
	digestCmd.Flags().IntVar(&chunkSize, "chunk-size", digest.DefaultChunkSize, "read size in bytes")
}
