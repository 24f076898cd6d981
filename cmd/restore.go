package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <version>",
	Short: "Restore the working directory from a snapshot",
	Long: `Replace the working directory with the tree of an existing
snapshot. The current working directory is first relocated to a
timestamped backup next to it, so nothing is deleted.

Example:
  verdir restore 3`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}

	s := newStore()
	result, err := s.Restore(version)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Restored snapshot v%d\n", result.Version)
	fmt.Printf("  Working directory: %s\n", result.Workdir)
	if result.BackupPath != "" {
		fmt.Printf("  Previous state:    %s\n", result.BackupPath)
	}

	return nil
}
