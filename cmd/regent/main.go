// Command regent evaluates AI system snapshot files offline: classify a
// snapshot and derive its compliance tasks, or diff two snapshot revisions
// for substantial modifications and reassessment triggers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "regent",
		Short:         "Offline EU AI Act risk classification and obligation derivation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newEvalCommand())
	root.AddCommand(newDiffCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
