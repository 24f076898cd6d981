package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/verdir/verdir/internal/store"
)

var (
	listJSON  bool
	listToon  bool
	listSince string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved snapshots",
	Long: `List every snapshot in ascending version order with timestamp,
size, file count and description.

Examples:
  verdir list
  verdir list --since 2026-08-01
  verdir list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listToon, "toon", false, "Output in LLM-friendly toon format")
	listCmd.Flags().StringVar(&listSince, "since", "", "Show snapshots since date (YYYY-MM-DD)")
}

func runList(cmd *cobra.Command, args []string) error {
	s := newStore()
	snapshots, err := s.List()
	if err != nil {
		return err
	}

	if listSince != "" {
		since, err := time.Parse("2006-01-02", listSince)
		if err != nil {
			return fmt.Errorf("invalid --since date format (use YYYY-MM-DD): %w", err)
		}
		filtered := snapshots[:0]
		for _, snap := range snapshots {
			if !snap.Timestamp.Before(since) {
				filtered = append(filtered, snap)
			}
		}
		snapshots = filtered
	}

	if listJSON {
		output, err := json.MarshalIndent(snapshots, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if listToon {
		output, err := gotoon.Encode(snapshots)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	if len(snapshots) == 0 {
		fmt.Println("No snapshots found")
		return nil
	}

	fmt.Printf("Found %d snapshot(s):\n\n", len(snapshots))
	for _, snap := range snapshots {
		fmt.Printf("  v%d  %s  %s\n", snap.Version,
			snap.Timestamp.Format("2006-01-02 15:04"), sizeColumn(snap))
		if snap.Description != "" {
			fmt.Printf("      %s\n", snap.Description)
		}
	}

	return nil
}

func sizeColumn(snap store.Snapshot) string {
	if snap.Missing {
		return "(tree missing)"
	}
	return fmt.Sprintf("%s, %d files", humanize.Bytes(uint64(snap.Size)), snap.FileCount)
}
