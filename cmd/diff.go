package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	diffJSON bool
	diffToon bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <versionA> <versionB>",
	Short: "Compare the file sets of two snapshots",
	Long: `Compare two snapshots and report which files exist only in one,
only in the other, or exist in both with a different size or
modification signature. Content is never compared byte-by-byte.

Example:
  verdir diff 1 2`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "Output as JSON")
	diffCmd.Flags().BoolVar(&diffToon, "toon", false, "Output in LLM-friendly toon format")
}

func runDiff(cmd *cobra.Command, args []string) error {
	versionA, err := parseVersion(args[0])
	if err != nil {
		return err
	}
	versionB, err := parseVersion(args[1])
	if err != nil {
		return err
	}

	s := newStore()
	report, err := s.Diff(versionA, versionB)
	if err != nil {
		return err
	}

	if diffJSON {
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if diffToon {
		output, err := gotoon.Encode(report)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Comparing v%d and v%d\n\n", report.VersionA, report.VersionB)
	fmt.Printf("v%d: %s, %d files\n", report.VersionA, humanize.Bytes(uint64(report.SizeA)), report.FilesA)
	fmt.Printf("v%d: %s, %d files\n\n", report.VersionB, humanize.Bytes(uint64(report.SizeB)), report.FilesB)

	if report.Empty() {
		fmt.Println("No differences")
		return nil
	}

	if len(report.OnlyInA) > 0 {
		fmt.Printf("Only in v%d:\n", report.VersionA)
		for _, path := range report.OnlyInA {
			fmt.Printf("  - %s\n", path)
		}
		fmt.Println()
	}
	if len(report.OnlyInB) > 0 {
		fmt.Printf("Only in v%d:\n", report.VersionB)
		for _, path := range report.OnlyInB {
			fmt.Printf("  + %s\n", path)
		}
		fmt.Println()
	}
	if len(report.Changed) > 0 {
		fmt.Println("Changed:")
		for _, path := range report.Changed {
			fmt.Printf("  ~ %s\n", path)
		}
	}

	return nil
}
