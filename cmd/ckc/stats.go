package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aaronsb/claude-knowledge-converter/internal/analyze"
	ckcerrors "github.com/aaronsb/claude-knowledge-converter/internal/errors"
	"github.com/aaronsb/claude-knowledge-converter/internal/registry"
	"github.com/aaronsb/claude-knowledge-converter/internal/scan"
)

var (
	statsTop      int
	statsMinCount int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print tag and file-pattern frequency statistics for the vault",
	Long: `Scan the vault and print frequency statistics: distribution summaries for
both label spaces, the estimated water levels, and the most frequent labels.

Useful for choosing water levels before running analyze.

Examples:
  ckc stats
  ckc stats --top 50
  ckc stats --min-count 3`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsTop, "top", 25, "How many top labels to list per space")
	statsCmd.Flags().IntVar(&statsMinCount, "min-count", 0, "Minimum occurrences before a label is counted")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) {
	vaultRoot := mustGetVaultRoot()
	cfg := mustLoadConfig(vaultRoot)
	logger := newLogger(cfg)

	exclusions, err := registry.LoadExclusions(resolveUnder(vaultRoot, cfg.Analyze.ExclusionsPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading exclusions: %v\n", err)
		os.Exit(1)
	}

	reg := registry.New(exclusions)
	scanner := scan.NewScanner(logger, cfg.Analyze.Workers)
	result, err := scanner.Scan(vaultRoot, reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning vault: %v\n", err)
		os.Exit(1)
	}
	if result.FilesScanned == 0 {
		err := ckcerrors.New(ckcerrors.VaultEmpty,
			fmt.Sprintf("no markdown files found under %s", vaultRoot), nil)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	minCount := statsMinCount
	if minCount <= 0 {
		minCount = cfg.Analyze.MinCount
	}

	tags := reg.FilteredTags(minCount)
	files := reg.FilteredFilePatterns(minCount)

	fmt.Printf("Scanned %d markdown files (%d skipped)\n\n", result.FilesScanned, result.FilesSkipped)

	printSpaceStats("Tags", tags, reg.UniqueTags(), analyze.EstimateTagLevel(tags))
	fmt.Printf("  conversation tags: %d, keyword tags: %d\n\n",
		reg.ConversationTagCount(), reg.KeywordTagCount())
	printSpaceStats("File patterns", files, reg.UniqueFilePatterns(), analyze.EstimateFileLevel(files))
	fmt.Println()

	printTopLabels("Top tags", tags, statsTop)
	fmt.Println()
	printTopLabels("Top file patterns", files, statsTop)
}

func printSpaceStats(name string, counts map[string]int, totalUnique, estimatedLevel int) {
	dist := analyze.Distribute(counts)
	fmt.Printf("%s: %d unique (%d above minimum count)\n", name, totalUnique, len(counts))
	fmt.Printf("  counts min/median/max: %d/%d/%d\n", dist.Min, dist.Median, dist.Max)
	fmt.Printf("  estimated water level: %d (keeps %d)\n",
		estimatedLevel, analyze.EligibleCount(counts, estimatedLevel))
}

func printTopLabels(title string, counts map[string]int, top int) {
	type entry struct {
		label string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, entry{label, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].label < entries[j].label
	})
	if len(entries) > top {
		entries = entries[:top]
	}

	fmt.Printf("%s:\n", title)
	for _, e := range entries {
		fmt.Printf("  %6d  %s\n", e.count, e.label)
	}
}
