package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/alpkeskin/gotoon"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	infoJSON bool
	infoToon bool
)

var infoCmd = &cobra.Command{
	Use:   "info <version>",
	Short: "Show metadata and content summary for a snapshot",
	Long: `Display a snapshot's ledger metadata together with statistics
derived from its stored tree: total size, file count, and file counts
grouped by extension class.

Example:
  verdir info 2`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output as JSON")
	infoCmd.Flags().BoolVar(&infoToon, "toon", false, "Output in LLM-friendly toon format")
}

func runInfo(cmd *cobra.Command, args []string) error {
	version, err := parseVersion(args[0])
	if err != nil {
		return err
	}

	s := newStore()
	details, err := s.Info(version)
	if err != nil {
		return err
	}

	if infoJSON {
		output, err := json.MarshalIndent(details, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if infoToon {
		output, err := gotoon.Encode(details)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Snapshot v%d\n\n", details.Version)
	fmt.Printf("Created:     %s\n", details.Timestamp.Format("2006-01-02 15:04:05 MST"))
	if details.Description != "" {
		fmt.Printf("Description: %s\n", details.Description)
	}
	fmt.Printf("Location:    %s\n", details.Path)
	fmt.Printf("Size:        %s\n", humanize.Bytes(uint64(details.Size)))
	fmt.Printf("Files:       %d\n", details.FileCount)

	if len(details.ByClass) > 0 {
		fmt.Println("\nBy class:")
		classes := make([]string, 0, len(details.ByClass))
		for class := range details.ByClass {
			classes = append(classes, class)
		}
		sort.Strings(classes)
		for _, class := range classes {
			fmt.Printf("  %-10s %d\n", class, details.ByClass[class])
		}
	}

	return nil
}
