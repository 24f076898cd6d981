package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save [description]",
	Short: "Save the working directory as a new snapshot",
	Long: `Copy the entire working directory into the snapshot store as the
next version number. The copy is staged and published atomically, so
an interrupted save never leaves a registered half-written snapshot.

Examples:
  verdir save
  verdir save "first complete draft"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	description := ""
	if len(args) > 0 {
		description = args[0]
	}

	s := newStore()
	snap, err := s.Save(description)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Saved snapshot v%d\n", snap.Version)
	fmt.Printf("  Created:     %s\n", snap.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("  Size:        %s (%d files)\n", humanize.Bytes(uint64(snap.Size)), snap.FileCount)
	if snap.Description != "" {
		fmt.Printf("  Description: %s\n", snap.Description)
	}
	fmt.Printf("  Location:    %s\n", snap.Path)

	return nil
}
