package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aaronsb/claude-knowledge-converter/internal/store"
)

var (
	recentLimit    int
	recentPlatform string
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently converted conversations from the catalog",
	Long: `List recently converted conversations recorded in the vault's catalog,
newest conversion first.

Examples:
  ckc recent
  ckc recent --limit 25
  ckc recent --platform chatgpt`,
	Run: runRecent,
}

func init() {
	recentCmd.Flags().IntVar(&recentLimit, "limit", 10, "Maximum conversations to list")
	recentCmd.Flags().StringVar(&recentPlatform, "platform", "", "Only list one platform (claude, chatgpt)")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) {
	vaultRoot := mustGetVaultRoot()
	cfg := mustLoadConfig(vaultRoot)
	logger := newLogger(cfg)

	catalog, err := store.Open(ckcDir(vaultRoot), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer catalog.Close()

	var records []store.Record
	if recentPlatform != "" {
		records, err = catalog.ByPlatform(recentPlatform, recentLimit)
	} else {
		records, err = catalog.Recent(recentLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		total, countErr := catalog.Count()
		if countErr == nil && total == 0 {
			fmt.Println("Catalog is empty. Run `ckc convert` first.")
			return
		}
		fmt.Println("No matching conversations.")
		return
	}

	for _, r := range records {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %-8s  %3d msgs  %2d md  %s\n",
			r.ConvertedAt, r.Platform, r.MessageCount, r.MarkdownCount, title)
		if len(r.Keywords) > 0 {
			fmt.Printf("%26s  keywords: %s\n", "", strings.Join(r.Keywords, ", "))
		}
	}
}
