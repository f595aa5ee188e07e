// Command osmflatc compiles an .osm.pbf file into an osmflat archive
// directory (spec.md §6).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osmflat/flatc/compiler"
	"github.com/osmflat/flatc/internal/ferr"
)

func main() {
	os.Exit(run())
}

func run() int {
	var opts compiler.Options

	cmd := &cobra.Command{
		Use:   "osmflatc <input.osm.pbf> <output_directory>",
		Short: "Compile an OpenStreetMap .osm.pbf extract into an osmflat archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compiler.Compile(cmd.Context(), args[0], args[1], opts, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVar(&opts.Threads, "threads", 0, "decode worker count (default: GOMAXPROCS)")
	cmd.Flags().IntVar(&opts.QueueSize, "queue-size", 0, fmt.Sprintf("in-flight decoded block budget (default: %d)", compiler.DefaultQueueSize))
	cmd.Flags().BoolVar(&opts.KeepIDs, "keep-ids", false, "also emit the optional ids/{nodes,ways,relations} sub-archive")
	cmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "suppress progress logging")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		var ferrErr *ferr.Error
		if errors.As(err, &ferrErr) {
			return ferrErr.ExitCode()
		}
		return 1
	}
	return 0
}
