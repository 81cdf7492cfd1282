package cmd

import (
	"fmt"
	"os"

	"github.com/veil-notes/veil/internal/state"
	"github.com/veil-notes/veil/pkg/cmd/root"
)

// Execute bootstraps process state and runs the root command. Errors reach
// the user through cobra's RunE plumbing; only bootstrap failures print
// directly.
func Execute() {
	s, err := state.NewState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "veil: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	rootCmd := root.NewCmdRoot(s)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
