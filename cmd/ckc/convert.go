package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aaronsb/claude-knowledge-converter/internal/convert"
	"github.com/aaronsb/claude-knowledge-converter/internal/logging"
	"github.com/aaronsb/claude-knowledge-converter/internal/store"
)

var (
	convertInput     string
	convertPlatform  string
	convertMaxKw     int
	convertProjects  bool
	convertNoCatalog bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a chat export into a dated markdown vault",
	Long: `Convert an archived chat export into a dated vault of per-message
markdown files with injected hashtags, extracted code snippets, and JSON
indexes.

Claude exports (conversations.json + optional projects.json) and ChatGPT
exports (mapping-tree conversations.json) are both supported; the format is
auto-detected unless --platform forces one. The input may be an unpacked
directory or the .zip archive as downloaded.

Examples:
  ckc convert --input ~/Downloads/data-export.zip
  ckc convert --input ./export --platform chatgpt
  ckc convert --input ./export --projects=false`,
	Run: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertInput, "input", "", "Export directory or .zip archive (required)")
	convertCmd.Flags().StringVar(&convertPlatform, "platform", "auto", "Export platform (auto, claude, chatgpt)")
	convertCmd.Flags().IntVar(&convertMaxKw, "max-keywords", 0, "Keywords injected per conversation (default from config)")
	convertCmd.Flags().BoolVar(&convertProjects, "projects", true, "Also convert projects.json when present")
	convertCmd.Flags().BoolVar(&convertNoCatalog, "no-catalog", false, "Skip recording conversations in the catalog")
	_ = convertCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) {
	vaultRoot := mustGetVaultRoot()
	cfg := mustLoadConfig(vaultRoot)
	logger := newLogger(cfg)

	maxKw := convertMaxKw
	if maxKw <= 0 {
		maxKw = cfg.Convert.MaxKeywords
	}

	src, err := convert.OpenSource(convertInput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer src.Close()

	platform := convertPlatform
	if platform == "auto" || platform == "" {
		platform, err = convert.DetectFormat(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("Detected export format", map[string]interface{}{
			"platform": platform,
		})
	}

	converter := convert.NewConverter(vaultRoot, maxKw, logger)

	var summary *convert.Summary
	switch platform {
	case "claude":
		summary, err = converter.ConvertConversations(src)
		if err == nil && convertProjects {
			err = converter.ConvertProjects(src)
		}
	case "chatgpt":
		summary, err = converter.ConvertChatGPT(src)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown platform %q (want claude or chatgpt)\n", platform)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Convert.Catalog && !convertNoCatalog {
		recordInCatalog(vaultRoot, platform, converter, logger)
	}

	summaryPath, err := converter.WriteSummary()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Converted %d conversations (%d markdown files, %d code snippets, %d errors)\n",
		summary.Conversations, summary.MarkdownFiles, summary.CodeSnippets, summary.Errors)
	if summary.Projects > 0 {
		fmt.Printf("Converted %d projects\n", summary.Projects)
	}
	fmt.Printf("Summary: %s\n", summaryPath)
}

// recordInCatalog upserts every converted conversation into the SQLite
// catalog. Catalog failures degrade to warnings; the vault is already
// written.
func recordInCatalog(vaultRoot, platform string, converter *convert.Converter, logger *logging.Logger) {
	catalog, err := store.Open(ckcDir(vaultRoot), logger)
	if err != nil {
		logger.Warn("Catalog unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer catalog.Close()

	for _, entry := range converter.Entries() {
		rec := &store.Record{
			UUID:          entry.UUID,
			Title:         entry.Name,
			Platform:      platform,
			CreatedAt:     entry.CreatedAt,
			Path:          filepath.ToSlash(entry.Path),
			MessageCount:  entry.MessageCount,
			MarkdownCount: len(entry.MarkdownFiles),
			Keywords:      entry.Keywords,
		}
		if err := catalog.Upsert(rec); err != nil {
			logger.Warn("Failed to catalog conversation", map[string]interface{}{
				"uuid":  entry.UUID,
				"error": err.Error(),
			})
		}
	}
}
