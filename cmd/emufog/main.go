// Command emufog classifies the backbone of a BRITE topology, attaches
// devices to its edge, places fog nodes and writes a MaxiNet script.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRoot(filepath.Base(os.Args[0])).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRoot(executable string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   executable,
		Short: "Fog computing topology generator",
		Args:  cobra.NoArgs,
		// Errors are printed in main.
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newRun(cmd),
		newSample(cmd),
		newVersion(),
	)
	return cmd
}
